package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/services/agent"
	"github.com/de-tools/hostaway-atlas/pkg/services/config"
	"github.com/de-tools/hostaway-atlas/pkg/services/dashboard"
	"github.com/de-tools/hostaway-atlas/pkg/store/client"
	"github.com/de-tools/hostaway-atlas/pkg/store/postgres"
	"github.com/rs/zerolog"
)

// GlobalFlags are the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigPath   string
	ProfilesPath string
	Profile      string
	Token        string
	OpenAIKey    string
}

// Env is what a command needs to talk to the booking API and the run store.
type Env struct {
	Settings    *config.Settings
	Credentials domain.Credentials
	Dashboard   *dashboard.Dashboard
	Runs        *postgres.RunStore
}

// Loader builds an Env from the global flags.
type Loader func(ctx context.Context) (*Env, error)

func (g *GlobalFlags) Load(ctx context.Context) (*Env, error) {
	settings, err := config.LoadSettings(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	creds, err := config.ResolveCredentials(ctx, g.ProfilesPath, g.Profile, domain.Credentials{
		HostawayToken: g.Token,
		OpenAIKey:     g.OpenAIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve credentials: %w", err)
	}

	comparator, err := settings.Comparator()
	if err != nil {
		return nil, err
	}

	env := &Env{Settings: settings, Credentials: creds}
	opts := []dashboard.Option{
		dashboard.WithComparator(comparator),
		dashboard.WithMaxRows(settings.Report.MaxRows),
		dashboard.WithColumnSubset(settings.Report.DefaultColumns),
	}

	if settings.Postgres.DSN != "" {
		runs, err := postgres.Open(ctx, settings.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		env.Runs = runs
		opts = append(opts, dashboard.WithRecorder(runs))
		zerolog.Ctx(ctx).Debug().Msg("validation runs are recorded in postgres")
	}

	env.Dashboard = dashboard.New(
		client.NewClient(http.DefaultClient, settings.Hostaway),
		agent.NewOpenAI(settings.Agent),
		opts...,
	)
	return env, nil
}

func (e *Env) Close() error {
	if e.Runs == nil {
		return nil
	}
	return e.Runs.Close()
}
