package verify

import (
	"fmt"

	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
)

// ProbePhase runs a throwaway container. Group membership granted earlier in
// the run is not effective in the current session, so the probe is elevated.
type ProbePhase struct{}

// NewProbePhase creates the verification probe phase.
func NewProbePhase() *ProbePhase {
	return &ProbePhase{}
}

// Name implements provisioning.Phase.
func (p *ProbePhase) Name() string {
	return "probe"
}

// Provision implements provisioning.Phase.
func (p *ProbePhase) Provision(ctx *provisioning.Context) error {
	image := ctx.Config.Verify.Image
	if _, err := ctx.Run(host.SudoCmd("docker", "run", "--rm", image)); err != nil {
		return fmt.Errorf("%w: %s did not run: %w", provisioning.ErrVerification, image, err)
	}
	ctx.Observer.Printf("[%s] %s ran successfully", p.Name(), image)
	return nil
}
