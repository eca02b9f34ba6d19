// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/hostprep/cmd/hostprep/handlers"
)

// Root returns the root command for the hostprep CLI.
//
// Invoked without a subcommand it runs install, so a bare "hostprep" does
// what the provisioning script always did.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:           "hostprep",
		Short:         "Install and configure Docker on Ubuntu",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), *opts)
		},
	}

	bindFlags(cmd, opts)

	cmd.AddCommand(Install(opts))
	cmd.AddCommand(Doctor(opts))
	cmd.AddCommand(Config(opts))
	cmd.AddCommand(Version())

	return cmd
}

// bindFlags registers the persistent flags shared by every subcommand.
func bindFlags(cmd *cobra.Command, opts *handlers.Options) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to YAML configuration file")
	flags.StringVar(&opts.EnvFile, "env-file", "", "Path to a dotenv file with HOSTPREP_* overrides")
	flags.StringVar(&opts.Host, "host", "", "Provision a remote machine over SSH instead of this one")
	flags.IntVar(&opts.Port, "port", 22, "SSH port of the remote machine")
	flags.StringVar(&opts.SSHUser, "ssh-user", "", "SSH login user; also added to the docker group")
	flags.StringVar(&opts.SSHKey, "ssh-key", "", "SSH private key (default: ~/.ssh/id_ed25519)")
	flags.StringVar(&opts.KnownHostsFile, "known-hosts", "", "known_hosts file (default: ~/.ssh/known_hosts if present)")
	flags.BoolVarP(&opts.AssumeYes, "yes", "y", false, "Continue on an unsupported platform without asking")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path after install")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log every command and its output")
}
