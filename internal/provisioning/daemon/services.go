package daemon

import (
	"fmt"

	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
)

func systemctl(args ...string) host.Command {
	return host.SudoCmd("systemctl", args...)
}

// EnablePhase enables the engine and its dependency service at boot.
type EnablePhase struct{}

// NewEnablePhase creates the service enablement phase.
func NewEnablePhase() *EnablePhase {
	return &EnablePhase{}
}

// Name implements provisioning.Phase.
func (p *EnablePhase) Name() string {
	return "enable-services"
}

// Provision implements provisioning.Phase.
func (p *EnablePhase) Provision(ctx *provisioning.Context) error {
	for _, svc := range []string{ctx.Config.Daemon.Service, ctx.Config.Daemon.DependencyService} {
		if _, err := ctx.Run(systemctl("enable", svc)); err != nil {
			return fmt.Errorf("failed to enable %s: %w", svc, err)
		}
		provisioning.LogChanged(ctx.Observer, p.Name(), svc, "enabled")
	}
	return nil
}

// RestartPhase restarts the engine so it picks up daemon.json.
type RestartPhase struct{}

// NewRestartPhase creates the service restart phase.
func NewRestartPhase() *RestartPhase {
	return &RestartPhase{}
}

// Name implements provisioning.Phase.
func (p *RestartPhase) Name() string {
	return "restart"
}

// Provision implements provisioning.Phase.
func (p *RestartPhase) Provision(ctx *provisioning.Context) error {
	svc := ctx.Config.Daemon.Service
	if _, err := ctx.Run(systemctl("restart", svc)); err != nil {
		return fmt.Errorf("failed to restart %s: %w", svc, err)
	}
	provisioning.LogChanged(ctx.Observer, p.Name(), svc, "restarted")
	return nil
}
