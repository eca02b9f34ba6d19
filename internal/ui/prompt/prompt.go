// Package prompt implements the operator confirmation asked before
// continuing on an unsupported platform.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/imamik/hostprep/internal/provisioning"
)

// Form asks with an interactive huh confirm. Aborting the form (Ctrl+C or
// Esc) counts as a decline.
type Form struct{}

// Confirm implements provisioning.Confirmer.
func (Form) Confirm(ctx context.Context, title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Continue").
				Negative("Abort").
				Value(&ok),
		),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Line reads one answer line from In. Only "y" or "Y" continues; end of
// input is a decline.
type Line struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements provisioning.Confirmer.
func (l Line) Confirm(ctx context.Context, title, description string) (bool, error) {
	if description != "" {
		fmt.Fprintln(l.Out, description)
	}
	fmt.Fprintf(l.Out, "%s (y/N) ", title)

	type answer struct {
		line string
		err  error
	}
	// On cancellation the reader stays blocked until In yields a line or EOF.
	// The process asks at most once per run, so the goroutine is left behind.
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(l.In).ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", a.err)
		}
		return strings.TrimSpace(a.line) == "y" || strings.TrimSpace(a.line) == "Y", nil
	}
}

// Yes confirms without asking.
type Yes struct{}

// Confirm implements provisioning.Confirmer.
func (Yes) Confirm(context.Context, string, string) (bool, error) {
	return true, nil
}

// New picks the confirmer for the current process: Yes when assumeYes is
// set, a huh form when stdin and stdout are terminals, a plain line read
// otherwise.
func New(assumeYes bool) provisioning.Confirmer {
	if assumeYes {
		return Yes{}
	}
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return Form{}
	}
	return Line{In: os.Stdin, Out: os.Stderr}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
