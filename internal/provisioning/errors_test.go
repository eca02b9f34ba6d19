package provisioning

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/hostprep/internal/host"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	aptFailure := &host.ExitError{Command: "sudo apt-get update", Code: 100}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"privilege", fmt.Errorf("privilege phase failed: %w", ErrPrivilege), 1},
		{"declined platform", fmt.Errorf("platform phase failed: %w", ErrPlatformMismatch), 1},
		{"verification with command status", fmt.Errorf("%w: %w", ErrVerification, &host.ExitError{Code: 125}), 1},
		{"dependency propagates status", fmt.Errorf("%w: %w", ErrDependencyInstall, aptFailure), 100},
		{"bare command status", fmt.Errorf("services phase failed: %w", &host.ExitError{Code: 5}), 5},
		{"plain error", errors.New("network unreachable"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
