package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/hostprep/internal/provisioning"
	"github.com/imamik/hostprep/internal/util/prerequisites"
)

func TestPrinter_Install(t *testing.T) {
	t.Parallel()
	state := provisioning.NewState()
	state.Report = provisioning.Report{
		DockerVersion:  "Docker version 27.3.1, build ce12230",
		ComposeVersion: "Docker Compose version v2.29.7",
		EngineVersion:  "27.3.1",
		Firewall:       "Status: inactive",
	}

	var buf bytes.Buffer
	Printer{W: &buf}.Install("localhost", "deploy", state)

	out := buf.String()
	assert.Contains(t, out, "Docker installed on localhost\n")
	assert.Contains(t, out, "  Client          Docker version 27.3.1, build ce12230\n")
	assert.Contains(t, out, "  Engine          27.3.1\n")
	assert.Contains(t, out, "  Firewall        Status: inactive\n")
	assert.Contains(t, out, "so deploy can use docker without sudo")
	assert.NotContains(t, out, "Warnings")
	assert.NotContains(t, out, "\x1b[", "plain output has no escape sequences")
}

func TestPrinter_InstallWarnings(t *testing.T) {
	t.Parallel()
	state := provisioning.NewState()
	state.Report.EngineVersion = "20.10.24"
	state.Report.EngineOutdated = true
	state.Warnings = []string{"could not remove runc: exit status 100"}

	var buf bytes.Buffer
	Printer{W: &buf}.Install("deploy@web1:22", "deploy", state)

	out := buf.String()
	assert.Contains(t, out, "20.10.24 (outdated)")
	assert.Contains(t, out, "Warnings\n")
	assert.Contains(t, out, "[??] could not remove runc: exit status 100")
}

func TestPrinter_Tools(t *testing.T) {
	t.Parallel()
	results := &prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: "apt-get", Required: true}, Found: true, Path: "/usr/bin/apt-get", Version: "apt 2.7.14"},
			{Tool: prerequisites.Tool{Name: "usermod", Required: true, Description: "Adds the user to the runtime group"}},
			{Tool: prerequisites.Tool{Name: "ufw", Description: "Reported as firewall status"}},
		},
	}

	var buf bytes.Buffer
	Printer{W: &buf}.Tools("localhost", results)

	out := buf.String()
	assert.Contains(t, out, "[OK] apt-get         /usr/bin/apt-get (apt 2.7.14)")
	assert.Contains(t, out, "[!!] usermod         not found: Adds the user to the runtime group")
	assert.Contains(t, out, "[??] ufw             not found")
}
