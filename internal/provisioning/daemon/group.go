package daemon

import (
	"fmt"

	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
)

// GroupPhase adds the invoking user to the runtime's group.
type GroupPhase struct{}

// NewGroupPhase creates the group membership phase.
func NewGroupPhase() *GroupPhase {
	return &GroupPhase{}
}

// Name implements provisioning.Phase.
func (p *GroupPhase) Name() string {
	return "group"
}

// Provision implements provisioning.Phase.
func (p *GroupPhase) Provision(ctx *provisioning.Context) error {
	if ctx.User == "" {
		return fmt.Errorf("invoking user is unknown")
	}
	group := ctx.Config.Daemon.Group

	if _, err := ctx.Run(host.SudoCmd("usermod", "-aG", group, ctx.User)); err != nil {
		return fmt.Errorf("failed to add %s to group %s: %w", ctx.User, group, err)
	}

	provisioning.LogChanged(ctx.Observer, p.Name(), ctx.User, "added to group "+group)
	ctx.Observer.Printf("[%s] log out and back in for %s membership to take effect", p.Name(), group)
	return nil
}
