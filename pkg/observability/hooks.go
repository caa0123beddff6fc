// Package observability provides hooks for metrics, tracing, and logging.
//
// The package keeps the library free of observability-framework
// dependencies: hook interfaces with no-op defaults are registered once at
// application startup, and the pipeline emits events through them. Any
// backend (OpenTelemetry, Prometheus, plain counters) can be plugged in by
// main without the library knowing.
//
// # Usage
//
// Register hooks at startup:
//
//	observability.SetOptimizeHooks(&myOptimizeHooks{})
//
// The pipeline emits events:
//
//	observability.Optimize().OnSmoothStart(ctx, method, numPoints)
//	// ... run smoothing ...
//	observability.Optimize().OnSmoothComplete(ctx, method, steps, residual, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// OptimizeHooks receives events from smoothing runs.
type OptimizeHooks interface {
	// OnSmoothStart records the beginning of a run.
	OnSmoothStart(ctx context.Context, method string, numPoints int)

	// OnStep records one committed relaxation step.
	OnStep(ctx context.Context, step int)

	// OnSmoothComplete records the end of a run.
	OnSmoothComplete(ctx context.Context, method string, steps int, residual float64, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// RenderHooks receives events from artifact rendering.
type RenderHooks interface {
	// OnRenderStart records the beginning of rendering.
	OnRenderStart(ctx context.Context, formats []string)

	// OnRenderComplete records the end of rendering.
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// NoopOptimizeHooks is a no-op implementation of OptimizeHooks.
type NoopOptimizeHooks struct{}

func (NoopOptimizeHooks) OnSmoothStart(context.Context, string, int) {}
func (NoopOptimizeHooks) OnStep(context.Context, int)                {}
func (NoopOptimizeHooks) OnSmoothComplete(context.Context, string, int, float64, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

var (
	optimizeHooks OptimizeHooks = NoopOptimizeHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	renderHooks   RenderHooks   = NoopRenderHooks{}
	hooksMu       sync.RWMutex
)

// SetOptimizeHooks registers custom smoothing hooks.
// Call once at application startup before any runs.
func SetOptimizeHooks(h OptimizeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		optimizeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Optimize returns the registered smoothing hooks.
func Optimize() OptimizeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return optimizeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults. Primarily for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	optimizeHooks = NoopOptimizeHooks{}
	cacheHooks = NoopCacheHooks{}
	renderHooks = NoopRenderHooks{}
}
