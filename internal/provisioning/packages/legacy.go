package packages

import (
	"fmt"

	"github.com/imamik/hostprep/internal/provisioning"
)

// LegacyRemovalPhase removes distribution packages that conflict with the
// upstream runtime. Every removal is attempted and failures are only
// reported: on a fresh machine none of these packages are installed.
type LegacyRemovalPhase struct{}

// NewLegacyRemovalPhase creates the legacy removal phase.
func NewLegacyRemovalPhase() *LegacyRemovalPhase {
	return &LegacyRemovalPhase{}
}

// Name implements provisioning.Phase.
func (p *LegacyRemovalPhase) Name() string {
	return "legacy-packages"
}

// Provision implements provisioning.Phase. It never returns an error.
func (p *LegacyRemovalPhase) Provision(ctx *provisioning.Context) error {
	removed := 0
	for _, pkg := range ctx.Config.Packages.Legacy {
		if _, err := ctx.Run(aptGet("remove", "-y", pkg)); err != nil {
			ctx.Warn(p.Name(), fmt.Sprintf("could not remove %s: %v", pkg, err))
			continue
		}
		removed++
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceRemoved,
			Phase:    p.Name(),
			Resource: pkg,
			Message:  "removed or not installed",
		})
	}

	ctx.Observer.Printf("[%s] processed %d of %d legacy packages", p.Name(), removed, len(ctx.Config.Packages.Legacy))
	return nil
}
