// Package pipeline provides the core smoothing pipeline for optimesh.
//
// This package implements the complete load → smooth → export pipeline that
// can be used by CLI and library callers. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the input mesh from disk
//  2. Smooth: Run the selected relaxation method until convergence
//  3. Render: Generate output in various formats (JSON, OFF, VTK, PNG, SVG, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "mesh.json",
//	    Method:  "cvt-full",
//	    Formats: []string{"json", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/IamSagarRai/optimesh/pkg/cache"
	apperrors "github.com/IamSagarRai/optimesh/pkg/errors"
	"github.com/IamSagarRai/optimesh/pkg/mesh"
	"github.com/IamSagarRai/optimesh/pkg/meshio"
	"github.com/IamSagarRai/optimesh/pkg/optimize"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultMethod is the relaxation method used when none is given.
	DefaultMethod = "cpt-fixed-point"

	// DefaultTol is the convergence tolerance on the maximum vertex
	// displacement per step.
	DefaultTol = 1e-5

	// DefaultMaxSteps caps the number of relaxation steps.
	DefaultMaxSteps = 100

	// DefaultSize is the default figure edge length in inches.
	DefaultSize = 6.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatOFF  = "off"
	FormatVTK  = "vtk"
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatOFF:  true,
	FormatVTK:  true,
	FormatPNG:  true,
	FormatSVG:  true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the smoothing pipeline.
// This struct supports JSON serialization for batch job descriptions.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"` // Mesh file path (.json or .off)

	// Smooth options
	Method   string  `json:"method,omitempty"`
	Tol      float64 `json:"tol,omitempty"`
	MaxSteps int     `json:"max_steps,omitempty"`
	Omega    float64 `json:"omega,omitempty"`
	Refresh  bool    `json:"refresh,omitempty"`

	// StepFormat is a printf-style path template with one integer verb,
	// e.g. "steps/mesh%03d.vtk". When set, the mesh is written there before
	// the first step and after every committed step, in the format picked
	// from the template's extension.
	StepFormat string `json:"step_format,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Size    float64  `json:"size,omitempty"`
	Edges   bool     `json:"edges,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Mesh     *mesh.Mesh              `json:"-"` // In-memory input, bypasses Input
	Logger   *log.Logger             `json:"-"`
	Callback func(int, *mesh.Mesh)   `json:"-"` // Forwarded to the relaxation driver
	Verbose  bool                    `json:"-"`
	Surface  optimize.Surface        `json:"-"` // Constrain vertices to an implicit surface
	Boundary func(mesh.Vec) mesh.Vec `json:"-"` // Boundary projection, nil freezes the boundary

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution for log correlation.
	RunID string

	// Mesh is the smoothed mesh.
	Mesh *mesh.Mesh

	// MeshHash is the content hash of the input mesh.
	MeshHash string

	// Steps is the number of relaxation steps taken.
	Steps int

	// Residual is the final maximum vertex displacement.
	Residual float64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Before and After summarize mesh quality around the run.
	Before, After mesh.Stats

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime   time.Duration
	SmoothTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SmoothHit bool // Whether the smoothed mesh came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, off, vtk, png, svg, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSmooth(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSmooth checks required fields for loading and smoothing.
func (o *Options) ValidateForSmooth() error {
	if o.Input == "" && o.Mesh == nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "input mesh is required")
	}

	if o.Method == "" {
		o.Method = DefaultMethod
	}
	if o.Tol == 0 {
		o.Tol = DefaultTol
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.Omega == 0 {
		o.Omega = optimize.DefaultOmega
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// OptimizeOptions translates pipeline options into driver options.
func (o *Options) OptimizeOptions() optimize.Options {
	out := optimize.Options{
		Omega:           o.Omega,
		Verbose:         o.Verbose,
		Logger:          o.Logger,
		Callback:        o.Callback,
		ImplicitSurface: o.Surface,
		BoundaryStep:    o.Boundary,
	}
	if o.StepFormat != "" {
		out.StepFilenameFormat = o.StepFormat
		out.SnapshotWriter = func(path string, m *mesh.Mesh) error {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			return meshio.Export(m, path)
		}
	}
	return out
}

// ResultKeyOpts returns cache key options for the smoothing stage.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	boundary := "freeze"
	if o.Boundary != nil {
		boundary = "project"
	}
	return cache.ResultKeyOpts{
		Method:   o.Method,
		Tol:      o.Tol,
		MaxSteps: o.MaxSteps,
		Omega:    o.Omega,
		Boundary: boundary,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Size:   o.Size,
		Edges:  o.Edges,
	}
}
