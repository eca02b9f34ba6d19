package preflight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/hostprep/internal/provisioning"
	hosttest "github.com/imamik/hostprep/internal/testing"
)

func TestParseOSRelease(t *testing.T) {
	t.Parallel()

	rel, err := ParseOSRelease([]byte(hosttest.UbuntuOSRelease))

	require.NoError(t, err)
	assert.Equal(t, provisioning.OSRelease{
		ID:         "ubuntu",
		VersionID:  "24.04",
		Codename:   "noble",
		PrettyName: "Ubuntu 24.04.1 LTS",
	}, rel)
}

func TestParseOSRelease_Fallbacks(t *testing.T) {
	t.Parallel()

	rel, err := ParseOSRelease([]byte("# comment\nNAME=\"Ubuntu\"\nID=ubuntu\nVERSION_ID=\"22.04\"\nUBUNTU_CODENAME=jammy\n"))

	require.NoError(t, err)
	assert.Equal(t, "jammy", rel.Codename)
	assert.Equal(t, "Ubuntu", rel.PrettyName)
}

func TestParseOSRelease_MissingID(t *testing.T) {
	t.Parallel()

	_, err := ParseOSRelease([]byte("NAME=Something\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ID field")
}

func TestPrivilegePhase_RegularUser(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()

	require.NoError(t, NewPrivilegePhase().Provision(f.Ctx))

	assert.Equal(t, 1000, f.Ctx.State.UID)
	assert.Equal(t, hosttest.TestUser, f.Ctx.User)
}

func TestPrivilegePhase_RootAbortsBeforeMutation(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()
	f.Runner.On("id -u", "0\n", nil)

	err := NewPrivilegePhase().Provision(f.Ctx)

	require.ErrorIs(t, err, provisioning.ErrPrivilege)
	assert.Equal(t, 1, provisioning.ExitCode(err))
	assert.False(t, f.Runner.Mutated())
}

func TestPrivilegePhase_ResolvesUserName(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()
	f.Ctx.User = ""
	f.Runner.On("id -un", "ubuntu\n", nil)

	require.NoError(t, NewPrivilegePhase().Provision(f.Ctx))
	assert.Equal(t, "ubuntu", f.Ctx.User)
}

func TestPrivilegePhase_RootUserName(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()
	f.Ctx.User = "root"

	err := NewPrivilegePhase().Provision(f.Ctx)
	require.ErrorIs(t, err, provisioning.ErrPrivilege)
}

func TestPrivilegePhase_BadOutput(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()
	f.Runner.On("id -u", "uid=1000\n", nil)

	err := NewPrivilegePhase().Provision(f.Ctx)

	require.Error(t, err)
	assert.NotErrorIs(t, err, provisioning.ErrPrivilege)
	assert.Contains(t, err.Error(), "unexpected output")
}

func TestPlatformPhase_Supported(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()

	require.NoError(t, NewPlatformPhase().Provision(f.Ctx))

	assert.Equal(t, "noble", f.Ctx.State.OS.Codename)
	assert.Zero(t, f.Confirm.Asked, "no prompt on the supported platform")
	assert.False(t, f.Ctx.State.PlatformConfirmed)
}

func TestPlatformPhase_DeclinedMismatch(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()
	f.Runner.WithFile("/etc/os-release", hosttest.DebianOSRelease)

	err := NewPlatformPhase().Provision(f.Ctx)

	require.ErrorIs(t, err, provisioning.ErrPlatformMismatch)
	assert.Equal(t, 1, provisioning.ExitCode(err))
	assert.Equal(t, 1, f.Confirm.Asked)
	assert.False(t, f.Runner.Mutated())
	assert.Len(t, f.Observer.Events(provisioning.EventWarning), 1)
}

func TestPlatformPhase_ConfirmedMismatch(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()
	f.Runner.WithFile("/etc/os-release", hosttest.DebianOSRelease)
	f.Confirm.Answer = true

	require.NoError(t, NewPlatformPhase().Provision(f.Ctx))

	assert.True(t, f.Ctx.State.PlatformConfirmed)
	assert.Equal(t, "bookworm", f.Ctx.State.OS.Codename)
	assert.Len(t, f.Ctx.State.Warnings, 1)
}

func TestPlatformPhase_PromptError(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()
	f.Runner.WithFile("/etc/os-release", hosttest.DebianOSRelease)
	f.Confirm.Err = errors.New("user aborted")

	err := NewPlatformPhase().Provision(f.Ctx)

	require.ErrorIs(t, err, provisioning.ErrPlatformMismatch)
	assert.Contains(t, err.Error(), "user aborted")
}

func TestPlatformPhase_MissingOSRelease(t *testing.T) {
	t.Parallel()
	f := hosttest.NewFixture()
	delete(f.Runner.Files, "/etc/os-release")

	err := NewPlatformPhase().Provision(f.Ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read /etc/os-release")
}
