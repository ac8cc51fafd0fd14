package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/hostaway-atlas/pkg/services/schedule"
	fileexport "github.com/de-tools/hostaway-atlas/pkg/store/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type WatchCmd struct {
	spec       string
	windowDays int
	timezone   string
	once       bool
	load       Loader
}

func NewWatchCmd(load Loader) *cobra.Command {
	wc := &WatchCmd{load: load}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Validate rental revenue for a trailing window on a cron schedule",
		Args:  cobra.NoArgs,
		RunE:  wc.run,
	}

	cmd.Flags().StringVar(&wc.spec, "schedule", "", "Cron spec (default from settings)")
	cmd.Flags().IntVar(&wc.windowDays, "window", 0, "Days to look back (default from settings)")
	cmd.Flags().StringVar(&wc.timezone, "tz", "UTC", "Time zone the schedule runs in")
	cmd.Flags().BoolVar(&wc.once, "once", false, "Run a single validation and exit")

	return cmd
}

func (wc *WatchCmd) run(cmd *cobra.Command, _ []string) error {
	location, err := time.LoadLocation(wc.timezone)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := wc.load(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	cfg := schedule.Config{
		Spec:        env.Settings.Schedule.Spec,
		WindowDays:  env.Settings.Schedule.WindowDays,
		Location:    location,
		Credentials: env.Credentials,
	}
	if wc.spec != "" {
		cfg.Spec = wc.spec
	}
	if wc.windowDays > 0 {
		cfg.WindowDays = wc.windowDays
	}

	var uploader schedule.Uploader
	if s3 := env.Settings.S3; s3.Bucket != "" {
		u, err := fileexport.NewS3UploaderFromEnv(ctx, s3.Region, s3.Bucket, s3.Prefix)
		if err != nil {
			return err
		}
		uploader = u
		zerolog.Ctx(ctx).Info().Str("bucket", s3.Bucket).Msg("discrepancies are uploaded to s3")
	}

	watcher := schedule.NewWatcher(env.Dashboard, uploader, cfg)
	if wc.once {
		_, err := watcher.RunOnce(ctx)
		return err
	}
	return watcher.Run(ctx)
}
