package packages

import "github.com/imamik/hostprep/internal/provisioning"

// RuntimePhase refreshes the index (now including the registered repository)
// and installs the engine, CLI, low-level runtime and plugins.
type RuntimePhase struct{}

// NewRuntimePhase creates the runtime installation phase.
func NewRuntimePhase() *RuntimePhase {
	return &RuntimePhase{}
}

// Name implements provisioning.Phase.
func (p *RuntimePhase) Name() string {
	return "runtime-packages"
}

// Provision implements provisioning.Phase.
func (p *RuntimePhase) Provision(ctx *provisioning.Context) error {
	if err := update(ctx); err != nil {
		return err
	}
	return install(ctx, p.Name(), ctx.Config.Packages.Runtime)
}
