package repository

import (
	"fmt"
	"strings"

	"github.com/imamik/hostprep/internal/config"
	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
)

// SourcesPhase writes the apt source entry for the repository.
type SourcesPhase struct{}

// NewSourcesPhase creates the repository registration phase.
func NewSourcesPhase() *SourcesPhase {
	return &SourcesPhase{}
}

// Name implements provisioning.Phase.
func (p *SourcesPhase) Name() string {
	return "sources"
}

// Provision implements provisioning.Phase.
func (p *SourcesPhase) Provision(ctx *provisioning.Context) error {
	out, err := ctx.Run(host.Cmd("dpkg", "--print-architecture"))
	if err != nil {
		return fmt.Errorf("failed to determine package architecture: %w", err)
	}
	arch := strings.TrimSpace(out)
	if arch == "" {
		return fmt.Errorf("dpkg reported an empty architecture")
	}
	ctx.State.Architecture = arch

	codename := ctx.State.OS.Codename
	if codename == "" {
		return fmt.Errorf("release codename unknown; os-release has neither VERSION_CODENAME nor UBUNTU_CODENAME")
	}

	line := SourcesLine(ctx.Config.Repository, arch, codename)
	ctx.State.SourcesLine = strings.TrimSpace(line)

	repo := ctx.Config.Repository
	if err := host.WriteFile(ctx, ctx.Host, repo.SourcesPath, []byte(line), config.FileMode); err != nil {
		return err
	}

	provisioning.LogFileWritten(ctx.Observer, p.Name(), repo.SourcesPath, len(line))
	return nil
}

// SourcesLine renders the one-line apt source entry, newline-terminated.
func SourcesLine(repo config.RepositoryConfig, arch, codename string) string {
	return fmt.Sprintf("deb [arch=%s signed-by=%s] %s %s %s\n",
		arch, repo.KeyringPath, repo.URL, codename, repo.Channel)
}
