package packages

import "github.com/imamik/hostprep/internal/provisioning"

// PrerequisitesPhase refreshes the package index and installs the tools needed
// to register a third-party repository.
type PrerequisitesPhase struct{}

// NewPrerequisitesPhase creates the prerequisites phase.
func NewPrerequisitesPhase() *PrerequisitesPhase {
	return &PrerequisitesPhase{}
}

// Name implements provisioning.Phase.
func (p *PrerequisitesPhase) Name() string {
	return "prerequisites"
}

// Provision implements provisioning.Phase.
func (p *PrerequisitesPhase) Provision(ctx *provisioning.Context) error {
	if err := update(ctx); err != nil {
		return err
	}
	return install(ctx, p.Name(), ctx.Config.Packages.Prerequisites)
}
