package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/de-tools/hostaway-atlas/pkg/server"
	"github.com/de-tools/hostaway-atlas/pkg/services/agent"
	"github.com/de-tools/hostaway-atlas/pkg/services/config"
	"github.com/de-tools/hostaway-atlas/pkg/services/dashboard"
	"github.com/de-tools/hostaway-atlas/pkg/store/client"
	"github.com/de-tools/hostaway-atlas/pkg/store/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	addr    string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Hostaway Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a settings file (yaml, toml or json)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	comparator, err := settings.Comparator()
	if err != nil {
		return err
	}

	opts := []dashboard.Option{
		dashboard.WithComparator(comparator),
		dashboard.WithMaxRows(settings.Report.MaxRows),
		dashboard.WithColumnSubset(settings.Report.DefaultColumns),
	}

	deps := server.Dependencies{}
	if settings.Postgres.DSN != "" {
		runs, err := postgres.Open(ctx, settings.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("failed to open run store: %w", err)
		}
		defer runs.Close()
		opts = append(opts, dashboard.WithRecorder(runs))
		deps.Runs = runs
		logger.Info().Msg("validation runs are recorded in postgres")
	}

	deps.Pages = dashboard.New(
		client.NewClient(http.DefaultClient, settings.Hostaway),
		agent.NewOpenAI(settings.Agent),
		opts...,
	)

	if addr == "" {
		addr = settings.Server.Addr
	}
	logger.Info().
		Str("hostaway", settings.Hostaway.BaseURL).
		Str("model", settings.Agent.Model).
		Msg("dashboard configured")

	return server.NewWebAPI(logger, server.Config{
		Addr:         addr,
		Dependencies: deps,
	}).Start()
}
