package observability

import (
	"context"
	"testing"
	"time"
)

type countingOptimizeHooks struct {
	NoopOptimizeHooks
	starts, steps, completes int
}

func (h *countingOptimizeHooks) OnSmoothStart(context.Context, string, int) { h.starts++ }
func (h *countingOptimizeHooks) OnStep(context.Context, int)                { h.steps++ }
func (h *countingOptimizeHooks) OnSmoothComplete(context.Context, string, int, float64, time.Duration, error) {
	h.completes++
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Optimize().OnSmoothStart(ctx, "laplace", 10)
	Optimize().OnStep(ctx, 1)
	Optimize().OnSmoothComplete(ctx, "laplace", 3, 1e-11, time.Second, nil)
	Cache().OnCacheHit(ctx, "result")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "result", 128)
	Render().OnRenderStart(ctx, []string{"png"})
	Render().OnRenderComplete(ctx, []string{"png"}, time.Second, nil)
}

func TestSetAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	hooks := &countingOptimizeHooks{}
	SetOptimizeHooks(hooks)

	ctx := context.Background()
	Optimize().OnSmoothStart(ctx, "lloyd", 100)
	Optimize().OnStep(ctx, 1)
	Optimize().OnStep(ctx, 2)
	Optimize().OnSmoothComplete(ctx, "lloyd", 2, 0.01, time.Millisecond, nil)

	if hooks.starts != 1 || hooks.steps != 2 || hooks.completes != 1 {
		t.Errorf("got starts=%d steps=%d completes=%d, want 1/2/1",
			hooks.starts, hooks.steps, hooks.completes)
	}

	Reset()
	if _, ok := Optimize().(NoopOptimizeHooks); !ok {
		t.Error("Reset should restore noop optimize hooks")
	}
}

func TestSetNilIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	SetOptimizeHooks(nil)
	SetCacheHooks(nil)
	SetRenderHooks(nil)

	if Optimize() == nil || Cache() == nil || Render() == nil {
		t.Error("nil hooks should be ignored")
	}
}
