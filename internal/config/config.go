package config

import "time"

// Config holds all settings of a provisioning run.
type Config struct {
	Platform   PlatformConfig   `yaml:"platform"`
	Repository RepositoryConfig `yaml:"repository"`
	Packages   PackagesConfig   `yaml:"packages"`
	Daemon     DaemonConfig     `yaml:"daemon"`
	Verify     VerifyConfig     `yaml:"verify"`
	Timeouts   Timeouts         `yaml:"timeouts"`
}

// PlatformConfig names the only distribution release the procedure supports
// without confirmation. Values are compared to ID and VERSION_ID of os-release.
type PlatformConfig struct {
	Distribution string `yaml:"distribution"`
	Version      string `yaml:"version"`
}

// RepositoryConfig describes the upstream apt repository and its signing key.
type RepositoryConfig struct {
	URL     string `yaml:"url"`
	Channel string `yaml:"channel"`
	KeyURL  string `yaml:"key_url"`

	// KeyFingerprint is checked against the downloaded key. Empty disables the check.
	KeyFingerprint string `yaml:"key_fingerprint"`

	KeyringDir  string `yaml:"keyring_dir"`
	KeyringPath string `yaml:"keyring_path"`
	SourcesPath string `yaml:"sources_path"`
}

// PackagesConfig lists the apt packages handled by each step.
type PackagesConfig struct {
	Prerequisites []string `yaml:"prerequisites"`
	Legacy        []string `yaml:"legacy"`
	Runtime       []string `yaml:"runtime"`
}

// DaemonConfig controls the engine daemon and its configuration document.
type DaemonConfig struct {
	ConfigDir         string `yaml:"config_dir"`
	ConfigPath        string `yaml:"config_path"`
	Service           string `yaml:"service"`
	DependencyService string `yaml:"dependency_service"`
	Group             string `yaml:"group"`
	AddressPoolBase   string `yaml:"address_pool_base"`
	AddressPoolSize   int    `yaml:"address_pool_size"`
}

// VerifyConfig controls the post-install smoke test and report.
type VerifyConfig struct {
	Image                string `yaml:"image"`
	MinimumEngineVersion string `yaml:"minimum_engine_version"`
}

// Timeouts holds network-related limits. Commands run on the target are not
// bounded; they block until the tool's own defaults elapse.
type Timeouts struct {
	// KeyFetch bounds the signing key download. Zero means no limit.
	KeyFetch   time.Duration `yaml:"key_fetch"`
	SSHDial    time.Duration `yaml:"ssh_dial"`
	SSHRetries int           `yaml:"ssh_retries"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Platform: PlatformConfig{
			Distribution: DefaultDistribution,
			Version:      DefaultVersion,
		},
		Repository: RepositoryConfig{
			URL:            DefaultRepositoryURL,
			Channel:        DefaultChannel,
			KeyURL:         DefaultKeyURL,
			KeyFingerprint: DefaultKeyFingerprint,
			KeyringDir:     DefaultKeyringDir,
			KeyringPath:    DefaultKeyringPath,
			SourcesPath:    DefaultSourcesPath,
		},
		Packages: PackagesConfig{
			Prerequisites: clone(DefaultPrerequisites),
			Legacy:        clone(DefaultLegacyPackages),
			Runtime:       clone(DefaultRuntimePackages),
		},
		Daemon: DaemonConfig{
			ConfigDir:         DefaultDaemonDir,
			ConfigPath:        DefaultDaemonConfig,
			Service:           DefaultService,
			DependencyService: DefaultDependencyService,
			Group:             DefaultGroup,
			AddressPoolBase:   DefaultAddressPoolBase,
			AddressPoolSize:   DefaultAddressPoolSize,
		},
		Verify: VerifyConfig{
			Image:                DefaultVerifyImage,
			MinimumEngineVersion: DefaultMinimumEngineVersion,
		},
		Timeouts: Timeouts{
			SSHDial:    10 * time.Second,
			SSHRetries: 5,
		},
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
