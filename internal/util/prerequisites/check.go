// Package prerequisites checks that the tools the install procedure invokes
// are present on the target host.
package prerequisites

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/hostprep/internal/host"
)

// Tool represents a host tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// VersionArgs, when set, are passed to the tool to report its version.
	VersionArgs []string
}

// DefaultTools returns the tools every install needs on the target.
func DefaultTools() []Tool {
	return []Tool{
		{Name: "sudo", Required: true, Description: "Elevates each mutating command", VersionArgs: []string{"--version"}},
		{Name: "id", Required: true, Description: "Reports the effective user"},
		{Name: "cat", Required: true, Description: "Reads /etc/os-release"},
		{Name: "apt-get", Required: true, Description: "Installs and removes packages", VersionArgs: []string{"--version"}},
		{Name: "dpkg", Required: true, Description: "Reports the package architecture", VersionArgs: []string{"--version"}},
		{Name: "install", Required: true, Description: "Writes files and directories with explicit modes"},
		{Name: "usermod", Required: true, Description: "Adds the user to the runtime group"},
		{Name: "systemctl", Required: true, Description: "Enables and restarts services", VersionArgs: []string{"--version"}},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{Name: "docker", Required: false, Description: "Present after a successful install", VersionArgs: []string{"--version"}},
		{Name: "ufw", Required: false, Description: "Reported as firewall status", VersionArgs: []string{"version"}},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	if !r.HasErrors() {
		return nil
	}
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.Description))
		}
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check looks up each tool in the target's PATH. A failure of the runner
// itself, such as a lost connection, is returned as an error.
func Check(ctx context.Context, r host.Runner, tools []Tool) (*CheckResults, error) {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		out, err := r.Run(ctx, lookPath(tool.Name))
		switch {
		case err == nil && strings.TrimSpace(out) != "":
			result.Found = true
			result.Path = strings.TrimSpace(out)
			result.Version = toolVersion(ctx, r, tool)
		case err == nil || isExit(err):
			results.Missing = append(results.Missing, tool)
		default:
			return nil, fmt.Errorf("failed to look up %s on %s: %w", tool.Name, r.Target(), err)
		}

		results.Results = append(results.Results, result)
	}

	return results, nil
}

// CheckAll checks all tools (default + optional).
func CheckAll(ctx context.Context, r host.Runner) (*CheckResults, error) {
	defaults := DefaultTools()
	optional := OptionalTools()
	all := make([]Tool, 0, len(defaults)+len(optional))
	all = append(all, defaults...)
	all = append(all, optional...)
	return Check(ctx, r, all)
}

// lookPath resolves name through the target's shell so builtins and
// PATH lookup behave as they would for the procedure.
func lookPath(name string) host.Command {
	return host.Cmd("sh", "-c", `command -v "$1"`, "sh", name)
}

// toolVersion returns the first line of the tool's version output, or "".
func toolVersion(ctx context.Context, r host.Runner, tool Tool) string {
	if len(tool.VersionArgs) == 0 {
		return ""
	}
	out, err := r.Run(ctx, host.Cmd(tool.Name, tool.VersionArgs...))
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[0])
}

func isExit(err error) bool {
	_, ok := host.ExitCode(err)
	return ok
}
