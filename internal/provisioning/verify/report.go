package verify

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
)

// ReportPhase collects client, compose and engine versions and the firewall
// status into State.Report.
type ReportPhase struct{}

// NewReportPhase creates the reporting phase.
func NewReportPhase() *ReportPhase {
	return &ReportPhase{}
}

// Name implements provisioning.Phase.
func (p *ReportPhase) Name() string {
	return "report"
}

// Provision implements provisioning.Phase.
func (p *ReportPhase) Provision(ctx *provisioning.Context) error {
	report := &ctx.State.Report

	var err error
	if report.DockerVersion, err = query(ctx, host.Cmd("docker", "--version")); err != nil {
		return err
	}
	if report.ComposeVersion, err = query(ctx, host.Cmd("docker", "compose", "version")); err != nil {
		return err
	}
	if report.EngineVersion, err = query(ctx, host.SudoCmd("docker", "version", "--format", "{{.Server.Version}}")); err != nil {
		return err
	}

	// ufw may be missing or inactive; the status is informational only.
	if out, err := ctx.Run(host.SudoCmd("ufw", "status")); err == nil {
		report.Firewall = firstLine(out)
	} else {
		report.Firewall = "unavailable"
		ctx.Observer.Debugf("ufw status: %v", err)
	}

	report.EngineOutdated = p.checkEngine(ctx, report.EngineVersion)
	return nil
}

// checkEngine warns when the engine is older than the configured minimum.
// Unparseable versions are not judged.
func (p *ReportPhase) checkEngine(ctx *provisioning.Context, version string) bool {
	minimum := ctx.Config.Verify.MinimumEngineVersion
	if minimum == "" {
		return false
	}
	want, err := semver.NewVersion(minimum)
	if err != nil {
		return false
	}
	have, err := semver.NewVersion(version)
	if err != nil {
		ctx.Observer.Debugf("engine version %q is not semver: %v", version, err)
		return false
	}
	if have.LessThan(want) {
		ctx.Warn(p.Name(), fmt.Sprintf("engine %s is older than the minimum %s", have, want))
		return true
	}
	return false
}

func query(ctx *provisioning.Context, cmd host.Command) (string, error) {
	out, err := ctx.Run(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to query %s: %w", cmd, err)
	}
	return firstLine(out), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
