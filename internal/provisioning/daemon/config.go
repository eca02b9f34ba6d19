package daemon

import (
	"fmt"

	"github.com/imamik/hostprep/internal/config"
	"github.com/imamik/hostprep/internal/daemonconfig"
	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
)

// ConfigPhase writes the daemon policy document, replacing any existing file.
type ConfigPhase struct{}

// NewConfigPhase creates the daemon configuration phase.
func NewConfigPhase() *ConfigPhase {
	return &ConfigPhase{}
}

// Name implements provisioning.Phase.
func (p *ConfigPhase) Name() string {
	return "daemon-config"
}

// Provision implements provisioning.Phase.
func (p *ConfigPhase) Provision(ctx *provisioning.Context) error {
	data, err := Render(ctx.Config)
	if err != nil {
		return err
	}

	cfg := ctx.Config.Daemon
	if err := host.MkdirAll(ctx, ctx.Host, cfg.ConfigDir, config.DirMode); err != nil {
		return err
	}
	if err := host.WriteFile(ctx, ctx.Host, cfg.ConfigPath, data, config.FileMode); err != nil {
		return err
	}

	ctx.State.DaemonConfig = data
	provisioning.LogFileWritten(ctx.Observer, p.Name(), cfg.ConfigPath, len(data))
	return nil
}

// Render produces the daemon.json bytes for cfg.
func Render(cfg *config.Config) ([]byte, error) {
	doc := daemonconfig.New(cfg.Daemon.AddressPoolBase, cfg.Daemon.AddressPoolSize)
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid daemon configuration: %w", err)
	}
	return doc.Marshal()
}
