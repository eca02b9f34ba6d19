package provisioning

import (
	"errors"

	"github.com/imamik/hostprep/internal/host"
)

// Failure classes of the procedure. Phases wrap one of these with %w so the
// caller can tell them apart with errors.Is.
var (
	// ErrPrivilege means the tool was started as root instead of a sudo-capable user.
	ErrPrivilege = errors.New("must not run as root")

	// ErrPlatformMismatch means the target is not the supported release and
	// the operator declined to continue.
	ErrPlatformMismatch = errors.New("unsupported platform")

	// ErrDependencyInstall means the package manager failed to install packages.
	ErrDependencyInstall = errors.New("package installation failed")

	// ErrVerification means the post-install smoke test failed.
	ErrVerification = errors.New("verification failed")
)

// ExitCode maps the outcome of a run to a process exit status.
//
// Guard and verification failures exit with 1. Any other failure of an
// external command propagates that command's exit status. Everything else
// exits with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrPlatformMismatch) || errors.Is(err, ErrVerification) || errors.Is(err, ErrPrivilege) {
		return 1
	}
	if code, ok := host.ExitCode(err); ok && code > 0 {
		return code
	}
	return 1
}
