package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/hostprep/cmd/hostprep/handlers"
)

// Install returns the command that runs the provisioning procedure.
func Install(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install Docker and apply the daemon policy",
		Long: `Install the Docker engine from the upstream apt repository.

Steps, in order, stopping at the first failure:
  - refuse to run as root, check the Ubuntu release
  - install prerequisites, remove conflicting packages
  - install the repository signing key and apt source
  - install docker-ce, containerd and the buildx/compose plugins
  - add the user to the docker group, enable services
  - write /etc/docker/daemon.json and restart the engine
  - run hello-world and print the installed versions

Examples:
  # Install on this machine
  hostprep install

  # Install on a remote machine
  hostprep install --host 203.0.113.10 --ssh-user deploy

  # Unattended, with node_exporter textfile metrics
  hostprep install --yes --metrics-file /var/lib/node_exporter/hostprep.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), *opts)
		},
	}
}
