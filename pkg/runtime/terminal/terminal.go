package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/hostaway-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/hostaway-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/hostaway-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	flags    commands.GlobalFlags
	reporter *export.Reporter
	logger   zerolog.Logger
	verbose  bool
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Log receives structured logs. Defaults to stderr.
	Log io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = os.Stderr
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
		logger:   zerolog.New(zerolog.ConsoleWriter{Out: opts.Log}).With().Timestamp().Logger(),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hostaway-atlas",
		Short:         "Hostaway finance reports, revenue validation and report Q&A",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.InfoLevel
			if cli.verbose {
				level = zerolog.DebugLevel
			}
			logger := cli.logger.Level(level)
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.flags.ConfigPath, "config", "c", "", "Path to a settings file (yaml, toml or json)")
	flags.StringVar(&cli.flags.ProfilesPath, "profiles", config.DefaultProfilesPath(), "Path to the credential profiles file")
	flags.StringVarP(&cli.flags.Profile, "profile", "p", config.DefaultProfile, "Credential profile to use")
	flags.StringVar(&cli.flags.Token, "token", os.Getenv("HOSTAWAY_TOKEN"), "Hostaway API token")
	flags.StringVar(&cli.flags.OpenAIKey, "openai-key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key")
	flags.BoolVarP(&cli.verbose, "verbose", "v", false, "Enable debug logs")

	cmd.AddCommand(commands.NewReportCmd(cli.flags.Load, cli.reporter))
	cmd.AddCommand(commands.NewValidateCmd(cli.flags.Load, cli.reporter))
	cmd.AddCommand(commands.NewWatchCmd(cli.flags.Load))
	cmd.AddCommand(commands.NewRunsCmd(cli.flags.Load, cli.reporter))
	cmd.AddCommand(commands.NewChannelsCmd(cli.reporter))

	return cmd
}
