package testing

import (
	"context"
	"net/http"

	"github.com/imamik/hostprep/internal/config"
	"github.com/imamik/hostprep/internal/provisioning"
)

// TestUser is the invoking user in contexts built by NewContext.
const TestUser = "deploy"

// Confirm answers every confirmation with answer and counts the questions.
type Confirm struct {
	Answer bool
	Err    error
	Asked  int
}

// Confirm implements provisioning.Confirmer.
func (c *Confirm) Confirm(context.Context, string, string) (bool, error) {
	c.Asked++
	return c.Answer, c.Err
}

// Fixture bundles a provisioning context with the fakes behind it.
type Fixture struct {
	Ctx      *provisioning.Context
	Runner   *FakeRunner
	Observer *RecordingObserver
	Confirm  *Confirm
}

// NewFixture builds a context for the supported platform with default
// configuration, a non-root user and a confirmer that declines.
func NewFixture() *Fixture {
	runner := NewFakeRunner().
		WithFile("/etc/os-release", UbuntuOSRelease).
		On("id -u", "1000\n", nil).
		On("dpkg --print-architecture", "amd64\n", nil)
	observer := NewRecordingObserver()
	confirm := &Confirm{}

	ctx := provisioning.NewContext(context.Background(), config.Default(), runner, observer, confirm, TestUser)
	ctx.HTTP = http.DefaultClient

	return &Fixture{Ctx: ctx, Runner: runner, Observer: observer, Confirm: confirm}
}
