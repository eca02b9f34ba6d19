package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/hostprep/cmd/hostprep/handlers"
)

// Config returns the command that prints the daemon configuration.
func Config(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the daemon.json that install would write",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Config(*opts)
		},
	}
}
