package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/hostprep/cmd/hostprep/handlers"
)

// Doctor returns the command that checks the target for required tools.
func Doctor(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the target for the tools the install needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), *opts)
		},
	}
}
