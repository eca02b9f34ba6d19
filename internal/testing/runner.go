package testing

import (
	"context"
	"strings"
	"sync"

	"github.com/imamik/hostprep/internal/host"
)

// UbuntuOSRelease is /etc/os-release of the supported release.
const UbuntuOSRelease = `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="24.04"
VERSION="24.04.1 LTS (Noble Numbat)"
VERSION_CODENAME=noble
ID=ubuntu
ID_LIKE=debian
UBUNTU_CODENAME=noble
`

// DebianOSRelease is /etc/os-release of an unsupported release.
const DebianOSRelease = `PRETTY_NAME="Debian GNU/Linux 12 (bookworm)"
NAME="Debian GNU/Linux"
VERSION_ID="12"
VERSION="12 (bookworm)"
VERSION_CODENAME=bookworm
ID=debian
`

type rule struct {
	prefix string
	output string
	err    error
}

// FakeRunner is an in-memory host.Runner.
//
// Commands are matched against rules registered with On by prefix of their
// rendered form ("sudo apt-get update"); the most recently registered match wins. Unmatched commands
// succeed with empty output. Writes through host.WriteFile land in Files and
// reads through host.ReadFile are served from it.
type FakeRunner struct {
	mu    sync.Mutex
	rules []rule
	calls []host.Command
	Files map[string][]byte
	Modes map[string]string
}

// NewFakeRunner creates a runner where every command succeeds.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Files: make(map[string][]byte),
		Modes: make(map[string]string),
	}
}

// On registers the result for commands starting with prefix.
func (f *FakeRunner) On(prefix, output string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{prefix: prefix, output: output, err: err})
	return f
}

// WithFile seeds a file readable through host.ReadFile.
func (f *FakeRunner) WithFile(path, content string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Files[path] = []byte(content)
	return f
}

// Target implements host.Runner.
func (f *FakeRunner) Target() string {
	return "fake"
}

// Run implements host.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd host.Command) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, cmd)
	line := cmd.String()

	for i := len(f.rules) - 1; i >= 0; i-- {
		if r := f.rules[i]; strings.HasPrefix(line, r.prefix) {
			return r.output, r.err
		}
	}

	if cmd.Name == "install" && len(cmd.Args) == 4 && cmd.Args[2] == "/dev/stdin" {
		path := cmd.Args[3]
		f.Files[path] = append([]byte(nil), cmd.Stdin...)
		f.Modes[path] = cmd.Args[1]
		return "", nil
	}
	if cmd.Name == "cat" && len(cmd.Args) == 1 {
		if data, ok := f.Files[cmd.Args[0]]; ok {
			return string(data), nil
		}
		return "cat: " + cmd.Args[0] + ": No such file or directory\n",
			&host.ExitError{Command: line, Code: 1}
	}
	return "", nil
}

// Calls returns the rendered commands in execution order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.String()
	}
	return out
}

// Commands returns the recorded commands in execution order.
func (f *FakeRunner) Commands() []host.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]host.Command(nil), f.calls...)
}

// Ran reports whether any executed command starts with prefix.
func (f *FakeRunner) Ran(prefix string) bool {
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// Mutated reports whether any elevated command ran.
func (f *FakeRunner) Mutated() bool {
	for _, c := range f.Commands() {
		if c.Sudo {
			return true
		}
	}
	return false
}
