package commands

import (
	"github.com/de-tools/hostaway-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewChannelsCmd(reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List the booking channels reports can filter on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return reporter.Channels()
		},
	}
}
