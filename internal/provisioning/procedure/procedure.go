// Package procedure assembles the provisioning phases into the fixed
// install order and runs them.
package procedure

import (
	"time"

	"github.com/imamik/hostprep/internal/provisioning"
	"github.com/imamik/hostprep/internal/provisioning/daemon"
	"github.com/imamik/hostprep/internal/provisioning/packages"
	"github.com/imamik/hostprep/internal/provisioning/preflight"
	"github.com/imamik/hostprep/internal/provisioning/repository"
	"github.com/imamik/hostprep/internal/provisioning/verify"
)

// Phases returns the install phases in execution order. Both guards come
// before the first mutating phase.
func Phases() []provisioning.Phase {
	return []provisioning.Phase{
		preflight.NewPrivilegePhase(),
		preflight.NewPlatformPhase(),
		packages.NewPrerequisitesPhase(),
		packages.NewLegacyRemovalPhase(),
		repository.NewTrustKeyPhase(),
		repository.NewSourcesPhase(),
		packages.NewRuntimePhase(),
		daemon.NewGroupPhase(),
		daemon.NewEnablePhase(),
		daemon.NewConfigPhase(),
		daemon.NewRestartPhase(),
		verify.NewProbePhase(),
		verify.NewReportPhase(),
	}
}

// Run executes the full procedure and records the run outcome in ctx.Metrics.
func Run(ctx *provisioning.Context) error {
	err := provisioning.RunPhases(ctx, Phases())
	ctx.Metrics.ObserveRun(time.Now(), len(ctx.State.Warnings), err)
	return err
}
