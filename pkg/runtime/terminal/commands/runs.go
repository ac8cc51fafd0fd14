package commands

import (
	"errors"

	"github.com/de-tools/hostaway-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

var errNoRunStore = errors.New("no run store configured, set postgres.dsn")

type RunsCmd struct {
	limit    int
	load     Loader
	reporter *export.Reporter
}

func NewRunsCmd(load Loader, reporter *export.Reporter) *cobra.Command {
	rc := &RunsCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded validation runs",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().IntVar(&rc.limit, "limit", 20, "Number of runs to list")

	return cmd
}

func (rc *RunsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	env, err := rc.load(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.Runs == nil {
		return errNoRunStore
	}
	runs, err := env.Runs.List(ctx, rc.limit)
	if err != nil {
		return err
	}
	return rc.reporter.Runs(runs)
}
