package provisioning

import (
	"context"
	"net/http"

	"github.com/imamik/hostprep/internal/config"
	"github.com/imamik/hostprep/internal/host"
)

// OSRelease holds the identifying fields of /etc/os-release.
type OSRelease struct {
	ID         string
	VersionID  string
	Codename   string
	PrettyName string
}

// Report holds the version strings printed at the end of a run.
type Report struct {
	DockerVersion  string
	ComposeVersion string
	EngineVersion  string
	EngineOutdated bool
	Firewall       string
}

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Preflight results
	UID               int
	OS                OSRelease
	PlatformConfirmed bool // unsupported platform accepted by the operator

	// Repository results
	Architecture    string
	KeyFingerprints []string
	SourcesLine     string

	// Daemon results
	DaemonConfig []byte

	// Steps that failed without aborting the run
	Warnings []string

	Report Report
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{UID: -1}
}

// Warn records a non-fatal problem and reports it to the observer.
func (c *Context) Warn(phase, message string) {
	c.State.Warnings = append(c.State.Warnings, message)
	c.Observer.Event(Event{
		Type:    EventWarning,
		Phase:   phase,
		Message: message,
	})
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Host     host.Runner
	Observer Observer
	Confirm  Confirmer
	HTTP     *http.Client
	Metrics  *Metrics

	// User is added to the runtime's group. It is the invoking user on the
	// local machine or the SSH login user on a remote one.
	User string
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	runner host.Runner,
	observer Observer,
	confirm Confirmer,
	user string,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Host:     runner,
		Observer: observer,
		Confirm:  confirm,
		HTTP:     &http.Client{},
		Metrics:  NewMetrics(),
		User:     user,
	}
}

// Run executes cmd on the target, logging the command and, at V(1), its output.
func (c *Context) Run(cmd host.Command) (string, error) {
	c.Observer.Debugf("$ %s", cmd.String())
	out, err := c.Host.Run(c, cmd)
	if out != "" {
		c.Observer.Debugf("%s", out)
	}
	return out, err
}
