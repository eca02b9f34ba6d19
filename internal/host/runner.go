package host

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Command describes a single external program invocation.
type Command struct {
	// Name is the program to run (looked up in PATH on the target).
	Name string

	// Args are passed verbatim, never through a shell on the local target.
	Args []string

	// Stdin, if non-nil, is fed to the program's standard input.
	Stdin []byte

	// Sudo runs the program through sudo.
	Sudo bool
}

// Cmd builds an unprivileged command.
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// SudoCmd builds a command elevated through sudo.
func SudoCmd(name string, args ...string) Command {
	return Command{Name: name, Args: args, Sudo: true}
}

// WithStdin returns a copy of c that reads data on stdin.
func (c Command) WithStdin(data []byte) Command {
	c.Stdin = data
	return c
}

// Argv returns the full argument vector including the sudo prefix.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+2)
	if c.Sudo {
		argv = append(argv, "sudo")
	}
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// String renders the command for logs.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Runner executes commands on a target machine.
type Runner interface {
	// Run executes the command and returns its combined output.
	// A non-zero exit is reported as an *ExitError.
	Run(ctx context.Context, cmd Command) (string, error)

	// Target names the machine for logs ("localhost" or "user@host").
	Target() string
}

// ExitError reports a command that ran and exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Output  string
}

func (e *ExitError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.Code, lastLine(out))
}

// ExitCode extracts the exit status of the first *ExitError in err's chain.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// lastLine keeps error messages to a single line; full output is logged separately.
func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
