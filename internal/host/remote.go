package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/alessio/shellescape"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/imamik/hostprep/internal/util/retry"
)

const (
	defaultSSHPort     = 22
	defaultDialTimeout = 10 * time.Second
)

// RemoteConfig holds SSH connection settings for a remote target.
type RemoteConfig struct {
	Host       string
	Port       int
	User       string
	PrivateKey []byte

	// KnownHostsFile verifies the server key. When empty the host key is not
	// checked, which is only acceptable for freshly created machines.
	KnownHostsFile string

	// DialTimeout bounds each TCP connection attempt.
	DialTimeout time.Duration

	// Retry controls connection attempts; commands themselves are never retried.
	Retry retry.Policy
}

// Remote runs commands on another machine over SSH.
// A new connection is opened for every command.
type Remote struct {
	config   RemoteConfig
	signer   ssh.Signer
	hostKeys ssh.HostKeyCallback
}

// NewRemote validates cfg and parses the private key.
func NewRemote(cfg RemoteConfig) (*Remote, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("remote host cannot be empty")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("remote user cannot be empty")
	}
	if len(cfg.PrivateKey) == 0 {
		return nil, fmt.Errorf("private key cannot be empty")
	}
	if cfg.Port == 0 {
		cfg.Port = defaultSSHPort
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaultDialTimeout
	}

	signer, err := ssh.ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	hostKeys := ssh.InsecureIgnoreHostKey() //nolint:gosec // opt-in via empty KnownHostsFile
	if cfg.KnownHostsFile != "" {
		hostKeys, err = knownhosts.New(cfg.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load known hosts: %w", err)
		}
	}

	return &Remote{config: cfg, signer: signer, hostKeys: hostKeys}, nil
}

// Target implements Runner.
func (r *Remote) Target() string {
	return r.config.User + "@" + r.address()
}

// User is the login user on the remote machine.
func (r *Remote) User() string {
	return r.config.User
}

// Run implements Runner.
func (r *Remote) Run(ctx context.Context, cmd Command) (string, error) {
	client, err := r.connect(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = client.Close() }()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to open SSH session on %s: %w", r.config.Host, err)
	}
	defer func() { _ = session.Close() }()

	if cmd.Stdin != nil {
		session.Stdin = bytes.NewReader(cmd.Stdin)
	}

	// Closing the session unblocks CombinedOutput when ctx is cancelled.
	stop := context.AfterFunc(ctx, func() { _ = session.Close() })
	defer stop()

	out, err := session.CombinedOutput(QuoteCommand(cmd))
	if err == nil {
		return string(out), nil
	}

	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return string(out), &ExitError{
			Command: cmd.String(),
			Code:    exitErr.ExitStatus(),
			Output:  string(out),
		}
	}
	if ctx.Err() != nil {
		return string(out), fmt.Errorf("%s on %s: %w", cmd.String(), r.config.Host, ctx.Err())
	}
	return string(out), fmt.Errorf("%s on %s: %w", cmd.String(), r.config.Host, err)
}

// QuoteCommand renders cmd as a single POSIX shell line for an SSH exec request.
func QuoteCommand(cmd Command) string {
	return shellescape.QuoteCommand(cmd.Argv())
}

func (r *Remote) connect(ctx context.Context) (*ssh.Client, error) {
	clientConfig := &ssh.ClientConfig{
		User:            r.config.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(r.signer)},
		HostKeyCallback: r.hostKeys,
		Timeout:         r.config.DialTimeout,
	}

	addr := r.address()
	var client *ssh.Client

	err := r.config.Retry.Do(ctx, func() error {
		var dialErr error
		client, dialErr = ssh.Dial("tcp", addr, clientConfig)
		var keyErr *knownhosts.KeyError
		if errors.As(dialErr, &keyErr) {
			return retry.Permanent(dialErr)
		}
		return dialErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return client, nil
}

func (r *Remote) address() string {
	return net.JoinHostPort(r.config.Host, strconv.Itoa(r.config.Port))
}
