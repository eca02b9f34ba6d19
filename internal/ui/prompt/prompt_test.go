package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"  y  \n", true},
		{"yes\n", false},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			l := Line{In: strings.NewReader(tt.input), Out: &out}

			ok, err := l.Confirm(context.Background(), "Continue?", "Detected debian 12.")

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, "Detected debian 12.\nContinue? (y/N) ", out.String())
		})
	}
}

func TestLine_ConfirmCancelled(t *testing.T) {
	t.Parallel()
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := Line{In: r, Out: io.Discard}.Confirm(ctx, "Continue?", "")

	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestYes(t *testing.T) {
	t.Parallel()
	ok, err := Yes{}.Confirm(context.Background(), "Continue?", "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNew(t *testing.T) {
	t.Parallel()
	assert.IsType(t, Yes{}, New(true))
	assert.NotNil(t, New(false))
}
