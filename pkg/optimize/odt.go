package optimize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// ODTFixedPoint proposes the volume-weighted average of the circumcenters
// of each vertex's incident cells, the classical ODT fixed-point update.
type ODTFixedPoint struct{}

// Name implements Method.
func (ODTFixedPoint) Name() string { return "odt-fixed-point" }

// NewPoints implements Method.
func (ODTFixedPoint) NewPoints(m *mesh.Mesh) []mesh.Vec {
	n := len(m.Points)
	areas := make([]float64, n)
	weighted := make([]mesh.Vec, n)
	for ci, c := range m.Cells {
		area := m.CellArea(ci)
		cc := m.CellCircumcenter(ci)
		for _, v := range c {
			areas[v] += area
			weighted[v] = weighted[v].Add(cc.Scale(area))
		}
	}
	out := make([]mesh.Vec, n)
	for i := range out {
		if areas[i] > 0 {
			out[i] = weighted[i].Scale(1.0 / areas[i])
		} else {
			out[i] = m.Points[i]
		}
	}
	return out
}

// odtMethods maps nonlinear selectors to gonum optimizers. Gradients and
// Hessians the methods need but the problem doesn't supply are filled in
// by finite differences inside Minimize.
func odtMethod(selector string) (optimize.Method, bool) {
	switch selector {
	case "bfgs":
		return &optimize.BFGS{}, true
	case "cg":
		return &optimize.CG{}, true
	case "newton":
		return &optimize.Newton{}, true
	case "gradient-descent":
		return &optimize.GradientDescent{}, true
	case "nelder-mead":
		return &optimize.NelderMead{}, true
	}
	return nil, false
}

// minimizeODT smooths the mesh by minimizing the ODT interpolation energy
// over the interior vertex coordinates with a general-purpose nonlinear
// optimizer, instead of running the relaxation loop. Boundary vertices stay
// fixed. After the minimizer returns, the triangulation is repaired once.
func minimizeODT(m *mesh.Mesh, selector string, tol float64, maxSteps int, opts Options) (Result, error) {
	method, ok := odtMethod(selector)
	if !ok {
		return Result{}, fmt.Errorf("%w: nonlinear ODT selector %q", ErrUnknownMethod, selector)
	}

	if opts.Verbose {
		opts.Logger.Info("before smoothing", "method", "odt-"+selector, "stats", m.ComputeStats().String())
	}
	if opts.Callback != nil {
		opts.Callback(0, m)
	}

	m.FlipUntilDelaunay()

	boundary := m.BoundaryPoints()
	interior := make([]int, 0, len(m.Points))
	for i := range m.Points {
		if !boundary[i] {
			interior = append(interior, i)
		}
	}
	if len(interior) == 0 {
		return Result{Steps: 0, Residual: 0}, nil
	}

	before := make([]mesh.Vec, len(m.Points))
	copy(before, m.Points)

	x0 := make([]float64, 3*len(interior))
	for r, v := range interior {
		p := m.Points[v]
		x0[3*r], x0[3*r+1], x0[3*r+2] = p.X, p.Y, p.Z
	}

	scratch := m.Clone()
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			for r, v := range interior {
				scratch.Points[v] = mesh.Vec{X: x[3*r], Y: x[3*r+1], Z: x[3*r+2]}
			}
			return odtEnergy(scratch)
		},
	}
	settings := optimize.Settings{
		MajorIterations:   maxSteps,
		GradientThreshold: tol,
	}

	result, err := optimize.Minimize(problem, x0, &settings, method)
	if err != nil && result == nil {
		return Result{}, fmt.Errorf("nonlinear ODT (%s): %w", selector, err)
	}

	for r, v := range interior {
		m.Points[v] = mesh.Vec{X: result.X[3*r], Y: result.X[3*r+1], Z: result.X[3*r+2]}
	}
	m.FlipUntilDelaunay()

	residual := 0.0
	for i := range m.Points {
		if d := m.Points[i].Sub(before[i]).Norm(); d > residual {
			residual = d
		}
	}
	steps := result.Stats.MajorIterations

	if opts.Verbose {
		opts.Logger.Info("smoothing finished",
			"method", "odt-"+selector,
			"steps", steps,
			"energy", result.F,
			"stats", m.ComputeStats().String())
	}
	if opts.Callback != nil {
		opts.Callback(steps, m)
	}
	return Result{Steps: steps, Residual: residual}, nil
}

// odtEnergy is the exact linear-interpolation error of |x|^2 over the
// triangulation with uniform density:
//
//	E = sum_T area(T)/12 * sum of T's squared edge lengths
//
// which is what ODT minimizes. The closed form makes the objective cheap
// enough for derivative-free and finite-difference methods.
func odtEnergy(m *mesh.Mesh) float64 {
	e := 0.0
	for ci, c := range m.Cells {
		a := m.Points[c[0]]
		b := m.Points[c[1]]
		d := m.Points[c[2]]
		edges := b.Sub(a).Norm2() + d.Sub(b).Norm2() + a.Sub(d).Norm2()
		e += m.CellArea(ci) / 12.0 * edges
	}
	if math.IsNaN(e) {
		return math.Inf(1)
	}
	return e
}
