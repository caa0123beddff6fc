package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/IamSagarRai/optimesh/pkg/cache"
	apperrors "github.com/IamSagarRai/optimesh/pkg/errors"
	"github.com/IamSagarRai/optimesh/pkg/mesh"
	"github.com/IamSagarRai/optimesh/pkg/meshio"
	"github.com/IamSagarRai/optimesh/pkg/observability"
	"github.com/IamSagarRai/optimesh/pkg/optimize"
	"github.com/IamSagarRai/optimesh/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → smooth → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	m, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Before = m.ComputeStats()
	result.MeshHash = meshHash(m)

	r.Logger.Info("loaded mesh",
		"run_id", result.RunID,
		"points", m.NumPoints(),
		"cells", m.NumCells(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Smooth
	smoothStart := time.Now()
	observability.Optimize().OnSmoothStart(ctx, opts.Method, m.NumPoints())
	smoothed, res, smoothHit, err := r.SmoothWithCacheInfo(ctx, m, result.MeshHash, opts)
	result.Stats.SmoothTime = time.Since(smoothStart)
	observability.Optimize().OnSmoothComplete(ctx, opts.Method, res.Steps, res.Residual, result.Stats.SmoothTime, err)
	if err != nil {
		return nil, fmt.Errorf("smooth: %w", err)
	}
	result.Mesh = smoothed
	result.Steps = res.Steps
	result.Residual = res.Residual
	result.After = smoothed.ComputeStats()
	result.CacheInfo.SmoothHit = smoothHit

	r.Logger.Info("smoothed mesh",
		"method", opts.Method,
		"steps", res.Steps,
		"residual", res.Residual,
		"duration", result.Stats.SmoothTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, smoothed, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the input mesh from opts.Mesh or opts.Input.
func (r *Runner) Load(opts Options) (*mesh.Mesh, error) {
	if opts.Mesh != nil {
		return opts.Mesh, nil
	}
	m, err := meshio.Import(opts.Input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "mesh file %s", opts.Input)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidMesh, err, "read mesh %s", opts.Input)
	}
	return m, nil
}

// smoothEntry is the cached representation of a smoothing result.
type smoothEntry struct {
	Steps    int             `json:"steps"`
	Residual float64         `json:"residual"`
	Mesh     json.RawMessage `json:"mesh"`
}

// SmoothWithCacheInfo runs the relaxation with caching and returns cache hit
// info. The input mesh is not modified; the smoothed mesh is a copy.
func (r *Runner) SmoothWithCacheInfo(ctx context.Context, m *mesh.Mesh, hash string, opts Options) (*mesh.Mesh, optimize.Result, bool, error) {
	if err := opts.ValidateForSmooth(); err != nil {
		return nil, optimize.Result{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ResultKey(hash, opts.ResultKeyOpts())

	// Surfaces and callbacks are not part of the cache key, callbacks must
	// observe every step, and snapshot runs must write their files, so
	// those runs always recompute.
	cacheable := opts.Surface == nil && opts.Callback == nil && opts.StepFormat == ""

	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var entry smoothEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				cached, err := meshio.ReadJSON(bytes.NewReader(entry.Mesh))
				if err == nil {
					observability.Cache().OnCacheHit(ctx, "result")
					return cached, optimize.Result{Steps: entry.Steps, Residual: entry.Residual}, true, nil
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	work := m.Clone()
	driverOpts := opts.OptimizeOptions()
	prev := driverOpts.Callback
	driverOpts.Callback = func(step int, stepMesh *mesh.Mesh) {
		observability.Optimize().OnStep(ctx, step)
		if prev != nil {
			prev(step, stepMesh)
		}
	}
	res, err := optimize.Optimize(work, opts.Method, opts.Tol, opts.MaxSteps, driverOpts)
	if err != nil {
		return nil, optimize.Result{}, false, err
	}

	if cacheable {
		var meshBuf bytes.Buffer
		if err := meshio.WriteJSON(work, &meshBuf); err == nil {
			entry := smoothEntry{Steps: res.Steps, Residual: res.Residual, Mesh: meshBuf.Bytes()}
			if data, err := json.Marshal(entry); err == nil {
				_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLResult)
				observability.Cache().OnCacheSet(ctx, "result", len(data))
			}
		}
	}

	return work, res, false, nil
}

// Smooth is a convenience wrapper that discards the cache hit info.
func (r *Runner) Smooth(ctx context.Context, m *mesh.Mesh, opts Options) (*mesh.Mesh, optimize.Result, error) {
	smoothed, res, _, err := r.SmoothWithCacheInfo(ctx, m, meshHash(m), opts)
	return smoothed, res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *mesh.Mesh, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hash := meshHash(m)

	// Try to get all formats from cache.
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	// Render all formats.
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderArtifact(m, format, opts)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		rendered[format] = data

		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, m *mesh.Mesh, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// renderArtifact produces a single output format for m.
func renderArtifact(m *mesh.Mesh, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := meshio.WriteJSON(m, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatOFF:
		var buf bytes.Buffer
		if err := meshio.WriteOFF(m, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatVTK:
		var buf bytes.Buffer
		if err := meshio.WriteVTK(m, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatPNG, FormatSVG:
		return render.Plot(m, render.PlotOptions{
			Format: format,
			Size:   opts.Size,
			Edges:  opts.Edges,
			Title:  opts.Title,
		})
	case FormatDOT:
		return []byte(render.ToDOT(m)), nil
	}
	return nil, fmt.Errorf("invalid format: %q", format)
}

// meshHash computes the content hash of a mesh from its canonical JSON form.
func meshHash(m *mesh.Mesh) string {
	var buf bytes.Buffer
	_ = meshio.WriteJSON(m, &buf)
	return cache.Hash(buf.Bytes())
}
