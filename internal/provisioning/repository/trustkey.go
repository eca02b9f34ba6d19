package repository

import (
	"context"
	"fmt"

	"github.com/imamik/hostprep/internal/config"
	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
	"github.com/imamik/hostprep/internal/trustkey"
)

// TrustKeyPhase downloads the repository signing key over HTTPS, converts it
// to binary keyring form and installs it world-readable and root-owned.
type TrustKeyPhase struct{}

// NewTrustKeyPhase creates the trust key phase.
func NewTrustKeyPhase() *TrustKeyPhase {
	return &TrustKeyPhase{}
}

// Name implements provisioning.Phase.
func (p *TrustKeyPhase) Name() string {
	return "trust-key"
}

// Provision implements provisioning.Phase.
func (p *TrustKeyPhase) Provision(ctx *provisioning.Context) error {
	repo := ctx.Config.Repository

	var fetchCtx context.Context = ctx
	if limit := ctx.Config.Timeouts.KeyFetch; limit > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	ctx.Observer.Printf("[%s] downloading %s", p.Name(), repo.KeyURL)
	raw, err := trustkey.Fetch(fetchCtx, ctx.HTTP, repo.KeyURL)
	if err != nil {
		return err
	}

	keyring, err := trustkey.Dearmor(raw)
	if err != nil {
		return err
	}

	if want := config.NormalizeFingerprint(repo.KeyFingerprint); want != "" {
		if err := trustkey.VerifyFingerprint(keyring, want); err != nil {
			return fmt.Errorf("signing key rejected: %w", err)
		}
	}
	if fps, err := trustkey.Fingerprints(keyring); err == nil {
		ctx.State.KeyFingerprints = fps
	}

	if err := host.MkdirAll(ctx, ctx.Host, repo.KeyringDir, config.DirMode); err != nil {
		return err
	}
	if err := host.WriteFile(ctx, ctx.Host, repo.KeyringPath, keyring, config.KeyringMode); err != nil {
		return err
	}

	provisioning.LogFileWritten(ctx.Observer, p.Name(), repo.KeyringPath, len(keyring))
	return nil
}
