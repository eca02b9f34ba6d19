package config

import "os"

// Supported platform.
const (
	DefaultDistribution = "ubuntu"
	DefaultVersion      = "24.04"
)

// Upstream apt repository.
const (
	DefaultRepositoryURL = "https://download.docker.com/linux/ubuntu"
	DefaultKeyURL        = DefaultRepositoryURL + "/gpg"
	DefaultChannel       = "stable"

	// DefaultKeyFingerprint is the Docker release signing key.
	DefaultKeyFingerprint = "9DC858229FC7DD38854AE2D88D81803C0EBFCD88"
)

// Fixed filesystem locations on the target.
const (
	DefaultKeyringDir   = "/etc/apt/keyrings"
	DefaultKeyringPath  = DefaultKeyringDir + "/docker.gpg"
	DefaultSourcesPath  = "/etc/apt/sources.list.d/docker.list"
	DefaultDaemonDir    = "/etc/docker"
	DefaultDaemonConfig = DefaultDaemonDir + "/daemon.json"
)

// File modes used for files written on the target.
const (
	DirMode     os.FileMode = 0o755
	KeyringMode os.FileMode = 0o644
	FileMode    os.FileMode = 0o644
)

// Services and groups.
const (
	DefaultService           = "docker.service"
	DefaultDependencyService = "containerd.service"
	DefaultGroup             = "docker"
)

// Daemon address pool handed to user-defined networks.
const (
	DefaultAddressPoolBase = "172.17.0.0/16"
	DefaultAddressPoolSize = 24
)

// DefaultVerifyImage is run once as a smoke test after installation.
const DefaultVerifyImage = "hello-world"

// DefaultMinimumEngineVersion triggers a warning when the installed engine is older.
const DefaultMinimumEngineVersion = "24.0.0"

// Package sets installed or removed by the procedure.
var (
	DefaultPrerequisites = []string{"ca-certificates", "curl", "gnupg"}

	DefaultLegacyPackages = []string{
		"docker.io",
		"docker-doc",
		"docker-compose",
		"docker-compose-v2",
		"podman-docker",
		"containerd",
		"runc",
	}

	DefaultRuntimePackages = []string{
		"docker-ce",
		"docker-ce-cli",
		"containerd.io",
		"docker-buildx-plugin",
		"docker-compose-plugin",
	}
)
