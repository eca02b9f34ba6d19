package provisioning

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(observer Observer) *Context {
	return &Context{
		Context:  context.Background(),
		State:    NewState(),
		Observer: observer,
		Metrics:  NewMetrics(),
	}
}

func TestNewPipeline(t *testing.T) {
	t.Parallel()
	p1 := phaseFunc("phase-1", nil)
	p2 := phaseFunc("phase-2", nil)

	pipeline := NewPipeline(p1, p2)

	require.NotNil(t, pipeline)
	assert.Len(t, pipeline.Phases, 2)
	assert.Equal(t, "phase-1", pipeline.Phases[0].Name())
	assert.Equal(t, "phase-2", pipeline.Phases[1].Name())
}

func TestPipeline_Run_Success(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)
	ctx := newTestContext(NewMockObserver())

	err := RunPhases(ctx, []Phase{
		phaseFunc("privilege", func(_ *Context) error { executed = append(executed, "privilege"); return nil }),
		phaseFunc("platform", func(_ *Context) error { executed = append(executed, "platform"); return nil }),
		phaseFunc("prerequisites", func(_ *Context) error { executed = append(executed, "prerequisites"); return nil }),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"privilege", "platform", "prerequisites"}, executed)
}

func TestPipeline_Run_StopsOnError(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)
	ctx := newTestContext(NewMockObserver())

	pipeline := NewPipeline(
		phaseFunc("prerequisites", func(_ *Context) error { executed = append(executed, "prerequisites"); return nil }),
		phaseFunc("trust-key", func(_ *Context) error { return fmt.Errorf("connection reset") }),
		phaseFunc("sources", func(_ *Context) error { executed = append(executed, "sources"); return nil }),
	)

	err := pipeline.Run(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "trust-key phase failed")
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, []string{"prerequisites"}, executed)
}

func TestPipeline_Run_WrapsSentinel(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(NewMockObserver())

	err := RunPhases(ctx, []Phase{
		phaseFunc("probe", func(_ *Context) error { return fmt.Errorf("%w: hello-world exited 125", ErrVerification) }),
	})

	require.ErrorIs(t, err, ErrVerification)
	assert.Equal(t, 1, ExitCode(err))
}

func TestPipeline_Run_EmptyPipeline(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(NewMockObserver())

	require.NoError(t, NewPipeline().Run(ctx))
}

func TestPipeline_Run_CancelledContext(t *testing.T) {
	t.Parallel()
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctx := newTestContext(NewMockObserver())
	ctx.Context = cctx
	ran := false

	err := RunPhases(ctx, []Phase{phaseFunc("privilege", func(_ *Context) error { ran = true; return nil })})

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestPipeline_Run_LogsPhaseEvents(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	ctx := newTestContext(observer)

	require.NoError(t, RunPhases(ctx, []Phase{phaseFunc("test", nil)}))

	assert.Equal(t, []EventType{EventPhaseStarted, EventPhaseCompleted}, observer.eventTypes())
	assert.Equal(t, "test (1/1)", observer.events[0].Phase)
}

func TestPipeline_Run_LogsFailure(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	ctx := newTestContext(observer)

	_ = RunPhases(ctx, []Phase{phaseFunc("failing", func(_ *Context) error { return fmt.Errorf("boom") })})

	assert.Equal(t, []EventType{EventPhaseStarted, EventPhaseFailed}, observer.eventTypes())
	assert.EqualError(t, observer.events[1].Err, "boom")
}

func TestPipeline_Run_RecordsMetrics(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(NewMockObserver())

	_ = RunPhases(ctx, []Phase{
		phaseFunc("ok", nil),
		phaseFunc("bad", func(_ *Context) error { return fmt.Errorf("boom") }),
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(ctx.Metrics.phaseTotal.WithLabelValues("ok", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ctx.Metrics.phaseTotal.WithLabelValues("bad", "failure")))
}

// phaseFunc creates a Phase from a function for testing.
type phaseFuncImpl struct {
	name string
	fn   func(*Context) error
}

func phaseFunc(name string, fn func(*Context) error) Phase {
	if fn == nil {
		fn = func(*Context) error { return nil }
	}
	return &phaseFuncImpl{name: name, fn: fn}
}

func (p *phaseFuncImpl) Name() string                 { return p.name }
func (p *phaseFuncImpl) Provision(ctx *Context) error { return p.fn(ctx) }
