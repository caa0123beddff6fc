package optimize

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// Default option values.
const (
	// DefaultOmega is the default relaxation factor (no damping).
	DefaultOmega = 1.0

	// DefaultSurfaceTol is the default implicit-surface tolerance.
	DefaultSurfaceTol = 1.0e-10

	// DefaultMaxSurfaceSteps bounds the implicit-surface projection loop.
	// The reference behavior is unbounded; a cap makes an ill-conditioned
	// field a reportable error instead of a hang.
	DefaultMaxSurfaceSteps = 50
)

// SnapshotWriter persists the mesh at a driver-chosen path. Export
// semantics (format, styling) belong to the writer, not the driver.
type SnapshotWriter func(path string, m *mesh.Mesh) error

// Options configures a smoothing run. The zero value is valid: zero fields
// take their defaults in ValidateAndSetDefaults.
type Options struct {
	// Omega is the relaxation factor scaling each step. Values below 1
	// damp unstable methods; the default is 1.
	Omega float64

	// Verbose logs quality statistics before the first and after the last
	// iteration.
	Verbose bool

	// Logger receives verbose output. Defaults to a discarding logger.
	Logger *log.Logger

	// Callback, when set, is invoked with the iteration index and the mesh
	// before the first iteration (index 0) and after every committed step.
	Callback func(step int, m *mesh.Mesh)

	// StepFilenameFormat is a printf-style template with one integer verb
	// for the iteration index. When set together with SnapshotWriter, a
	// snapshot is written before the first iteration and after every
	// committed step.
	StepFilenameFormat string

	// SnapshotWriter persists per-step snapshots. Ignored unless
	// StepFilenameFormat is set.
	SnapshotWriter SnapshotWriter

	// ImplicitSurface, when set, is the surface all points are projected
	// back onto after every committed step.
	ImplicitSurface Surface

	// ImplicitSurfaceTol is the field-value magnitude below which a point
	// counts as on the surface. Defaults to 1e-10.
	ImplicitSurfaceTol float64

	// MaxSurfaceSteps bounds the projection loop per iteration; exceeding
	// it fails the run with ErrSurfaceStalled. Defaults to 50.
	MaxSurfaceSteps int

	// BoundaryStep, when set, maps a boundary vertex's proposed position
	// back onto the domain boundary. When nil, boundary vertices are
	// frozen at their current positions.
	BoundaryStep func(mesh.Vec) mesh.Vec

	validated bool
}

// ValidateAndSetDefaults fills zero fields with defaults. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Omega == 0 {
		o.Omega = DefaultOmega
	}
	if o.ImplicitSurfaceTol == 0 {
		o.ImplicitSurfaceTol = DefaultSurfaceTol
	}
	if o.MaxSurfaceSteps == 0 {
		o.MaxSurfaceSteps = DefaultMaxSurfaceSteps
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
