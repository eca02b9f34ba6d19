package packages

import (
	"fmt"

	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
)

func aptGet(args ...string) host.Command {
	return host.SudoCmd("apt-get", args...)
}

// update refreshes the package index.
func update(ctx *provisioning.Context) error {
	if _, err := ctx.Run(aptGet("update")); err != nil {
		return fmt.Errorf("%w: index refresh: %w", provisioning.ErrDependencyInstall, err)
	}
	return nil
}

// install installs pkgs non-interactively in a single transaction.
func install(ctx *provisioning.Context, phase string, pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"install", "-y"}, pkgs...)
	if _, err := ctx.Run(aptGet(args...)); err != nil {
		return fmt.Errorf("%w: %w", provisioning.ErrDependencyInstall, err)
	}
	provisioning.LogPackagesInstalled(ctx.Observer, phase, pkgs)
	return nil
}
