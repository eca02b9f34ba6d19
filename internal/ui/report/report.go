// Package report renders the end-of-run summary and the doctor checklist,
// styled with lipgloss on terminals and as plain text otherwise.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/hostprep/internal/provisioning"
	"github.com/imamik/hostprep/internal/util/prerequisites"
)

// Printer writes summaries to W. Styled enables colors and layout.
type Printer struct {
	W      io.Writer
	Styled bool
}

func (p Printer) style(s lipgloss.Style, text string) string {
	if !p.Styled {
		return text
	}
	return s.Render(text)
}

func (p Printer) row(label, value string) string {
	if !p.Styled {
		return fmt.Sprintf("  %-16s%s", label, value)
	}
	return "  " + labelStyle.Render(label) + value
}

// Install prints the version report of a completed run.
func (p Printer) Install(target, user string, state *provisioning.State) {
	r := state.Report
	var b strings.Builder

	fmt.Fprintln(&b, p.style(titleStyle, "Docker installed on "+target))
	fmt.Fprintln(&b, p.style(sectionStyle, "Versions"))
	fmt.Fprintln(&b, p.row("Client", r.DockerVersion))
	fmt.Fprintln(&b, p.row("Compose", r.ComposeVersion))

	engine := r.EngineVersion
	if r.EngineOutdated {
		engine = p.style(warningStyle, engine+" (outdated)")
	}
	fmt.Fprintln(&b, p.row("Engine", engine))
	fmt.Fprintln(&b, p.row("Firewall", r.Firewall))

	if len(state.Warnings) > 0 {
		fmt.Fprintln(&b, p.style(sectionStyle, "Warnings"))
		for _, w := range state.Warnings {
			fmt.Fprintln(&b, "  "+p.style(warningStyle, warnMark)+" "+w)
		}
	}

	fmt.Fprintln(&b, p.style(footerStyle,
		fmt.Sprintf("Log out and back in so %s can use docker without sudo.", user)))

	_, _ = io.WriteString(p.W, b.String())
}

// Tools prints a prerequisite checklist.
func (p Printer) Tools(target string, results *prerequisites.CheckResults) {
	var b strings.Builder

	fmt.Fprintln(&b, p.style(titleStyle, "Prerequisites on "+target))
	for _, r := range results.Results {
		mark, detail := p.style(readyStyle, checkMark), r.Path
		if r.Version != "" {
			detail += " (" + r.Version + ")"
		}
		if !r.Found {
			detail = "not found: " + r.Tool.Description
			if r.Tool.Required {
				mark = p.style(failedStyle, crossMark)
			} else {
				mark = p.style(warningStyle, warnMark)
			}
		}
		fmt.Fprintf(&b, "  %s %s\n", mark, p.row(r.Tool.Name, detail)[2:])
	}

	_, _ = io.WriteString(p.W, b.String())
}
