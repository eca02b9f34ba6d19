package handlers

import (
	"fmt"

	"github.com/imamik/hostprep/internal/provisioning/daemon"
)

// Config prints the daemon.json that an install with these options would write.
func Config(opts Options) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return err
	}

	data, err := daemon.Render(cfg)
	if err != nil {
		return err
	}

	_, err = stdout.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
