package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Load builds the configuration for a run.
//
// path is an optional YAML file; envFile is an optional dotenv file whose
// values apply unless the same variable is set in the process environment.
func Load(path, envFile string) (*Config, error) {
	return LoadWithEnv(path, envFile, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment.
func LoadWithEnv(path, envFile string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		lookup = layered(lookup, fileEnv)
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// mergeFile decodes a YAML file over the current values. Keys absent from the
// file keep their defaults; unknown keys are rejected.
func (c *Config) mergeFile(path string) error {
	// #nosec G304 - path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty file
		}
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	return nil
}

// Environment variables recognized by applyEnv:
//   - HOSTPREP_DISTRIBUTION, HOSTPREP_VERSION
//   - HOSTPREP_REPOSITORY_URL, HOSTPREP_KEY_URL, HOSTPREP_KEY_FINGERPRINT
//   - HOSTPREP_ADDRESS_POOL_BASE, HOSTPREP_ADDRESS_POOL_SIZE
//   - HOSTPREP_VERIFY_IMAGE, HOSTPREP_MINIMUM_ENGINE_VERSION
//   - HOSTPREP_TIMEOUT_KEY_FETCH (default: 0, no limit)
//   - HOSTPREP_TIMEOUT_SSH_DIAL (default: 10s)
//   - HOSTPREP_SSH_RETRIES (default: 5)
func (c *Config) applyEnv(lookup LookupFunc) error {
	setString(lookup, "HOSTPREP_DISTRIBUTION", &c.Platform.Distribution)
	setString(lookup, "HOSTPREP_VERSION", &c.Platform.Version)
	setString(lookup, "HOSTPREP_REPOSITORY_URL", &c.Repository.URL)
	setString(lookup, "HOSTPREP_KEY_URL", &c.Repository.KeyURL)
	setString(lookup, "HOSTPREP_KEY_FINGERPRINT", &c.Repository.KeyFingerprint)
	setString(lookup, "HOSTPREP_ADDRESS_POOL_BASE", &c.Daemon.AddressPoolBase)
	setString(lookup, "HOSTPREP_VERIFY_IMAGE", &c.Verify.Image)
	setString(lookup, "HOSTPREP_MINIMUM_ENGINE_VERSION", &c.Verify.MinimumEngineVersion)

	if err := setInt(lookup, "HOSTPREP_ADDRESS_POOL_SIZE", &c.Daemon.AddressPoolSize); err != nil {
		return err
	}
	if err := setInt(lookup, "HOSTPREP_SSH_RETRIES", &c.Timeouts.SSHRetries); err != nil {
		return err
	}
	if err := setDuration(lookup, "HOSTPREP_TIMEOUT_KEY_FETCH", &c.Timeouts.KeyFetch); err != nil {
		return err
	}
	return setDuration(lookup, "HOSTPREP_TIMEOUT_SSH_DIAL", &c.Timeouts.SSHDial)
}

// layered resolves from primary first and falls back to values.
func layered(primary LookupFunc, values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}
}

func setString(lookup LookupFunc, key string, dst *string) {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(lookup LookupFunc, key string, dst *int) error {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = i
	return nil
}

func setDuration(lookup LookupFunc, key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
