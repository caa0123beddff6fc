package optimize

import (
	"fmt"
	"math"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// Result reports how a smoothing run ended.
type Result struct {
	// Steps is the number of committed iterations.
	Steps int

	// Residual is the largest per-vertex displacement of the last
	// committed step, a proxy for distance from the fixed point.
	Residual float64
}

// Optimize smooths the mesh in place with the named method until every
// per-vertex step is shorter than tol or maxSteps iterations have been
// committed. The method name is normalized before lookup; unknown names
// fail with ErrUnknownMethod before the mesh is touched.
//
// ODT variants other than "odt-fixed-point" are handed to a nonlinear
// optimizer instead of the relaxation loop, with the remainder of the name
// selecting the minimization method. That path accepts no relaxation
// factor other than 1.
func Optimize(m *mesh.Mesh, method string, tol float64, maxSteps int, opts Options) (Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}

	normalized := NormalizeName(method)
	if sel, ok := nonlinearSelector(normalized); ok {
		if math.Abs(opts.Omega-1.0) > 1e-15 {
			return Result{}, fmt.Errorf("%w: got %v", ErrInvalidOmega, opts.Omega)
		}
		return minimizeODT(m, sel, tol, maxSteps, opts)
	}

	meth, ok := Lookup(normalized)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return relax(m, meth, tol, maxSteps, opts)
}

// OptimizePointsCells builds a mesh from raw vertex and cell arrays, runs
// Optimize on it and returns the final arrays. Delaunay repair may change
// which diagonals the cells use, so the returned cells can differ from the
// input beyond vertex positions.
func OptimizePointsCells(points []mesh.Vec, cells [][3]int, method string, tol float64, maxSteps int, opts Options) ([]mesh.Vec, [][3]int, Result, error) {
	m, err := mesh.New(points, cells)
	if err != nil {
		return nil, nil, Result{}, err
	}
	res, err := Optimize(m, method, tol, maxSteps, opts)
	if err != nil {
		return nil, nil, Result{}, err
	}
	return m.Points, m.Cells, res, nil
}

// relax runs the fixed-point relaxation loop.
func relax(m *mesh.Mesh, meth Method, tol float64, maxSteps int, opts Options) (Result, error) {
	k := 0

	if opts.Verbose {
		opts.Logger.Info("before smoothing", "method", meth.Name(), "stats", m.ComputeStats().String())
	}
	if err := writeSnapshot(opts, k, m); err != nil {
		return Result{}, err
	}
	if opts.Callback != nil {
		opts.Callback(k, m)
	}

	// The input may not be locally Delaunay; repair once up front so the
	// geometry entering iteration 1 is consistent.
	m.FlipUntilDelaunay()

	boundary := m.BoundaryPoints()
	n := len(m.Points)
	diff := make([]mesh.Vec, n)
	tol2 := tol * tol

	var maxDiff2 float64
	for {
		k++

		proposal := meth.NewPoints(m)
		if len(proposal) != n {
			return Result{}, fmt.Errorf("%w: method %q returned %d points for %d vertices",
				ErrBadProposal, meth.Name(), len(proposal), n)
		}

		// Boundary policy: frozen without a boundary step, otherwise the
		// free proposal is projected back onto the boundary.
		for i := range proposal {
			if !boundary[i] {
				continue
			}
			if opts.BoundaryStep == nil {
				proposal[i] = m.Points[i]
			} else {
				proposal[i] = opts.BoundaryStep(proposal[i])
			}
		}

		for i := range diff {
			diff[i] = proposal[i].Sub(m.Points[i]).Scale(opts.Omega)
		}

		// Unstable methods can propose steps long enough to flip a
		// triangle, after which quality metrics and Delaunay repair are
		// ill-defined. Capping each vertex's step at half the minimum
		// incircle radius of its incident cells rules that out. Vertices
		// with no incident cell stay unconstrained.
		maxStep := clampBounds(m)
		for i := range diff {
			l := diff[i].Norm()
			if l > maxStep[i] {
				diff[i] = diff[i].Scale(maxStep[i] / l)
			}
		}

		for i := range m.Points {
			m.Points[i] = m.Points[i].Add(diff[i])
		}

		if opts.ImplicitSurface != nil {
			err := projectToSurface(m.Points, opts.ImplicitSurface, opts.ImplicitSurfaceTol, opts.MaxSurfaceSteps)
			if err != nil {
				return Result{Steps: k}, err
			}
		}

		m.FlipUntilDelaunay()

		maxDiff2 = 0
		allBelow := true
		for i := range diff {
			d2 := diff[i].Norm2()
			if d2 > maxDiff2 {
				maxDiff2 = d2
			}
			if d2 >= tol2 {
				allBelow = false
			}
		}
		isFinal := allBelow || k >= maxSteps

		if isFinal && opts.Verbose {
			opts.Logger.Info("smoothing finished",
				"method", meth.Name(),
				"steps", k,
				"omega", opts.Omega,
				"stats", m.ComputeStats().String())
		}
		if err := writeSnapshot(opts, k, m); err != nil {
			return Result{Steps: k}, err
		}
		if opts.Callback != nil {
			opts.Callback(k, m)
		}

		if isFinal {
			break
		}
	}

	return Result{Steps: k, Residual: math.Sqrt(maxDiff2)}, nil
}

// clampBounds returns the per-vertex displacement ceiling: half the minimum
// incircle radius over all incident cells, +Inf for vertices touching no
// cell.
func clampBounds(m *mesh.Mesh) []float64 {
	bounds := make([]float64, len(m.Points))
	for i := range bounds {
		bounds[i] = math.Inf(1)
	}
	radii := m.CellInradii()
	for ci, c := range m.Cells {
		for _, v := range c {
			if radii[ci] < bounds[v] {
				bounds[v] = radii[ci]
			}
		}
	}
	for i := range bounds {
		bounds[i] *= 0.5
	}
	return bounds
}

// writeSnapshot persists the mesh for iteration k when snapshotting is
// configured.
func writeSnapshot(opts Options, k int, m *mesh.Mesh) error {
	if opts.StepFilenameFormat == "" || opts.SnapshotWriter == nil {
		return nil
	}
	path := fmt.Sprintf(opts.StepFilenameFormat, k)
	if err := opts.SnapshotWriter(path, m); err != nil {
		return fmt.Errorf("snapshot step %d: %w", k, err)
	}
	return nil
}
