package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fast = Policy{Attempts: 4, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestDo_FirstAttemptSucceeds(t *testing.T) {
	t.Parallel()
	calls := 0

	err := fast.Do(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	t.Parallel()
	calls := 0

	err := fast.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()
	calls := 0
	cause := errors.New("no route to host")

	err := fast.Do(context.Background(), func() error {
		calls++
		return cause
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gave up after 4 attempts")
	assert.Equal(t, 4, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	t.Parallel()
	calls := 0
	cause := errors.New("unable to authenticate")

	err := fast.Do(context.Background(), func() error {
		calls++
		return Permanent(cause)
	})

	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0

	err := Policy{Attempts: 10, Delay: time.Hour}.Do(ctx, func() error {
		calls++
		return errors.New("timeout")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPolicy_WithDefaults(t *testing.T) {
	t.Parallel()

	p := Policy{}.withDefaults()
	assert.Equal(t, DefaultPolicy, p)

	p = Policy{Attempts: 2, Delay: time.Minute, MaxDelay: time.Second}.withDefaults()
	assert.Equal(t, time.Minute, p.MaxDelay, "max delay never undercuts the initial delay")
}

func TestPermanent_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Permanent(nil))
	assert.False(t, IsPermanent(errors.New("plain")))
}
