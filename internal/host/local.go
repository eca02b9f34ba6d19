package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Local runs commands on the current machine.
type Local struct{}

// NewLocal creates a runner for the current machine.
func NewLocal() *Local {
	return &Local{}
}

// Target implements Runner.
func (l *Local) Target() string {
	return "localhost"
}

// Run implements Runner.
func (l *Local) Run(ctx context.Context, cmd Command) (string, error) {
	argv := cmd.Argv()

	// #nosec G204 - argv is assembled from configuration, not user input
	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if cmd.Stdin != nil {
		c.Stdin = bytes.NewReader(cmd.Stdin)
	}

	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out

	err := c.Run()
	if err == nil {
		return out.String(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out.String(), &ExitError{
			Command: cmd.String(),
			Code:    exitErr.ExitCode(),
			Output:  out.String(),
		}
	}
	return out.String(), fmt.Errorf("failed to run %s: %w", cmd.String(), err)
}
