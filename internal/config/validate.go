package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Validate checks the configuration for values the procedure cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if c.Platform.Distribution == "" {
		errs = append(errs, fmt.Errorf("platform.distribution is required"))
	}
	if c.Platform.Version == "" {
		errs = append(errs, fmt.Errorf("platform.version is required"))
	}

	errs = append(errs, c.validateRepository()...)
	errs = append(errs, c.validateDaemon()...)

	if len(c.Packages.Runtime) == 0 {
		errs = append(errs, fmt.Errorf("packages.runtime must not be empty"))
	}
	if c.Verify.Image == "" {
		errs = append(errs, fmt.Errorf("verify.image is required"))
	}
	if v := c.Verify.MinimumEngineVersion; v != "" {
		if _, err := semver.NewVersion(v); err != nil {
			errs = append(errs, fmt.Errorf("verify.minimum_engine_version %q: %w", v, err))
		}
	}
	if c.Timeouts.KeyFetch < 0 {
		errs = append(errs, fmt.Errorf("timeouts.key_fetch must not be negative"))
	}
	if c.Timeouts.SSHRetries < 1 {
		errs = append(errs, fmt.Errorf("timeouts.ssh_retries must be at least 1"))
	}

	return errors.Join(errs...)
}

func (c *Config) validateRepository() []error {
	var errs []error
	r := c.Repository

	for _, f := range []field{{"repository.url", r.URL}, {"repository.key_url", r.KeyURL}} {
		name, raw := f.name, f.value
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s %q is not an absolute URL", name, raw))
			continue
		}
		if u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("%s must use https, got %q", name, u.Scheme))
		}
	}

	if r.Channel == "" {
		errs = append(errs, fmt.Errorf("repository.channel is required"))
	}
	if fp := NormalizeFingerprint(r.KeyFingerprint); fp != "" {
		if _, err := hex.DecodeString(fp); err != nil || len(fp) != 40 {
			errs = append(errs, fmt.Errorf("repository.key_fingerprint must be 40 hex characters"))
		}
	}
	for _, f := range []field{
		{"repository.keyring_dir", r.KeyringDir},
		{"repository.keyring_path", r.KeyringPath},
		{"repository.sources_path", r.SourcesPath},
	} {
		if !strings.HasPrefix(f.value, "/") {
			errs = append(errs, fmt.Errorf("%s must be absolute, got %q", f.name, f.value))
		}
	}
	return errs
}

func (c *Config) validateDaemon() []error {
	var errs []error
	d := c.Daemon

	prefix, err := netip.ParsePrefix(d.AddressPoolBase)
	if err != nil {
		errs = append(errs, fmt.Errorf("daemon.address_pool_base: %w", err))
	} else if prefix.Masked() != prefix {
		errs = append(errs, fmt.Errorf("daemon.address_pool_base %s has host bits set, use %s",
			d.AddressPoolBase, prefix.Masked()))
	} else if d.AddressPoolSize < prefix.Bits() || d.AddressPoolSize > prefix.Addr().BitLen() {
		errs = append(errs, fmt.Errorf("daemon.address_pool_size %d must be between /%d and /%d",
			d.AddressPoolSize, prefix.Bits(), prefix.Addr().BitLen()))
	}

	for _, f := range []field{{"daemon.config_dir", d.ConfigDir}, {"daemon.config_path", d.ConfigPath}} {
		if !strings.HasPrefix(f.value, "/") {
			errs = append(errs, fmt.Errorf("%s must be absolute, got %q", f.name, f.value))
		}
	}
	if d.Service == "" || d.Group == "" {
		errs = append(errs, fmt.Errorf("daemon.service and daemon.group are required"))
	}
	return errs
}

type field struct {
	name  string
	value string
}

// NormalizeFingerprint strips spaces and colons and upper-cases a key fingerprint.
func NormalizeFingerprint(fp string) string {
	fp = strings.NewReplacer(" ", "", ":", "").Replace(fp)
	return strings.ToUpper(fp)
}
