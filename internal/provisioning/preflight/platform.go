package preflight

import (
	"fmt"

	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
)

const phasePlatform = "platform"

// PlatformPhase checks the target's OS identity. An unexpected release is not
// fatal by itself: the operator is warned and must explicitly confirm.
type PlatformPhase struct{}

// NewPlatformPhase creates the platform guard.
func NewPlatformPhase() *PlatformPhase {
	return &PlatformPhase{}
}

// Name implements provisioning.Phase.
func (p *PlatformPhase) Name() string {
	return phasePlatform
}

// Provision implements provisioning.Phase.
func (p *PlatformPhase) Provision(ctx *provisioning.Context) error {
	data, err := host.ReadFile(ctx, ctx.Host, osReleasePath)
	if err != nil {
		return err
	}

	rel, err := ParseOSRelease(data)
	if err != nil {
		return err
	}
	ctx.State.OS = rel

	want := ctx.Config.Platform
	if rel.ID == want.Distribution && rel.VersionID == want.Version {
		ctx.Observer.Printf("[%s] detected %s", phasePlatform, rel.PrettyName)
		return nil
	}

	detected := fmt.Sprintf("%s %s", rel.ID, rel.VersionID)
	ctx.Warn(phasePlatform, fmt.Sprintf("this procedure targets %s %s, detected %s", want.Distribution, want.Version, detected))

	ok, err := ctx.Confirm.Confirm(ctx,
		"Continue on an unsupported platform?",
		fmt.Sprintf("Detected %s (%s). Packages and repository paths may not match.", rel.PrettyName, detected),
	)
	if err != nil {
		return fmt.Errorf("%w: confirmation failed: %w", provisioning.ErrPlatformMismatch, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s declined by operator", provisioning.ErrPlatformMismatch, detected)
	}

	ctx.State.PlatformConfirmed = true
	ctx.Observer.Printf("[%s] continuing on %s at operator request", phasePlatform, detected)
	return nil
}
