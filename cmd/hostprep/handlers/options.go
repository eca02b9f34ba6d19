// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/imamik/hostprep/internal/config"
	"github.com/imamik/hostprep/internal/host"
	"github.com/imamik/hostprep/internal/provisioning"
	"github.com/imamik/hostprep/internal/ui/prompt"
	"github.com/imamik/hostprep/internal/util/retry"
)

// Options carries the global flags shared by all commands.
type Options struct {
	ConfigPath string
	EnvFile    string

	// Remote target; empty Host means the local machine.
	Host           string
	Port           int
	SSHUser        string
	SSHKey         string
	KnownHostsFile string

	AssumeYes   bool
	MetricsFile string
	Verbose     bool
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig loads configuration from file and environment.
	loadConfig = config.Load

	// readFile reads local files such as the SSH private key.
	readFile = os.ReadFile

	// newConfirmer picks the platform confirmation prompt.
	newConfirmer = prompt.New

	// stdout and stderr receive reports and logs.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// isStdoutTerminal reports whether reports may be styled.
	isStdoutTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd())
	}

	// lookupUser returns the invoking user on the local machine.
	lookupUser = func() string {
		if name := os.Getenv("USER"); name != "" {
			return name
		}
		if u, err := user.Current(); err == nil {
			return u.Username
		}
		return ""
	}

	// homeDir locates the default known_hosts file.
	homeDir = os.UserHomeDir
)

func newObserver(opts Options) provisioning.Observer {
	verbosity := 0
	if opts.Verbose {
		verbosity = 1
	}
	return provisioning.NewConsoleObserver(provisioning.NewLogger(stderr, verbosity))
}

// newRunner builds the command runner for the target and names the user who
// will be added to the runtime group.
var newRunner = func(opts Options, cfg *config.Config) (host.Runner, string, error) {
	if opts.Host == "" {
		return host.NewLocal(), lookupUser(), nil
	}

	if opts.SSHUser == "" {
		return nil, "", fmt.Errorf("--ssh-user is required with --host")
	}
	keyPath := opts.SSHKey
	if keyPath == "" {
		home, err := homeDir()
		if err != nil {
			return nil, "", fmt.Errorf("--ssh-key is required: %w", err)
		}
		keyPath = filepath.Join(home, ".ssh", "id_ed25519")
	}
	key, err := readFile(keyPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read SSH key: %w", err)
	}

	remote, err := host.NewRemote(host.RemoteConfig{
		Host:           opts.Host,
		Port:           opts.Port,
		User:           opts.SSHUser,
		PrivateKey:     key,
		KnownHostsFile: knownHostsFile(opts),
		DialTimeout:    cfg.Timeouts.SSHDial,
		Retry: retry.Policy{
			Attempts: cfg.Timeouts.SSHRetries,
			Delay:    retry.DefaultPolicy.Delay,
			MaxDelay: retry.DefaultPolicy.MaxDelay,
		},
	})
	if err != nil {
		return nil, "", err
	}
	return remote, remote.User(), nil
}

// knownHostsFile returns the explicit file, or ~/.ssh/known_hosts when it exists.
func knownHostsFile(opts Options) string {
	if opts.KnownHostsFile != "" {
		return opts.KnownHostsFile
	}
	home, err := homeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".ssh", "known_hosts")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
