package preflight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
)

const phasePrivilege = "privilege"

// PrivilegePhase refuses to run as root. Elevation is requested per command
// through sudo, so the tool must start as the user that will own the runtime
// group membership.
type PrivilegePhase struct{}

// NewPrivilegePhase creates the privilege guard.
func NewPrivilegePhase() *PrivilegePhase {
	return &PrivilegePhase{}
}

// Name implements provisioning.Phase.
func (p *PrivilegePhase) Name() string {
	return phasePrivilege
}

// Provision implements provisioning.Phase.
func (p *PrivilegePhase) Provision(ctx *provisioning.Context) error {
	out, err := ctx.Run(host.Cmd("id", "-u"))
	if err != nil {
		return fmt.Errorf("failed to determine effective user: %w", err)
	}

	uid, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return fmt.Errorf("unexpected output from id -u: %q", strings.TrimSpace(out))
	}
	ctx.State.UID = uid

	if uid == 0 {
		return fmt.Errorf("%w: run as a regular user with sudo rights instead of root", provisioning.ErrPrivilege)
	}

	if ctx.User == "" {
		name, err := ctx.Run(host.Cmd("id", "-un"))
		if err != nil {
			return fmt.Errorf("failed to determine user name: %w", err)
		}
		ctx.User = strings.TrimSpace(name)
	}
	if ctx.User == "root" {
		return fmt.Errorf("%w: invoking user is root", provisioning.ErrPrivilege)
	}

	ctx.Observer.Printf("[%s] running as %s (uid %d), elevating per command with sudo", phasePrivilege, ctx.User, uid)
	return nil
}
