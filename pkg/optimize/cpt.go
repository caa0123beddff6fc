package optimize

import (
	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// CPTFixedPoint proposes the area-weighted average of the centroids of
// each vertex's incident cells, the uniform-density CPT fixed-point update.
type CPTFixedPoint struct{}

// Name implements Method.
func (CPTFixedPoint) Name() string { return "cpt-fixed-point" }

// NewPoints implements Method.
func (CPTFixedPoint) NewPoints(m *mesh.Mesh) []mesh.Vec {
	return cptTargets(m)
}

// CPTQuasiNewton takes the per-vertex Newton step of the CPT energy with
// its diagonal 2A_i·I Hessian blocks. With uniform density the block step
// lands on the same target as the fixed point; the value of this variant
// is that the gradient/Hessian split survives a non-uniform density
// extension unchanged.
type CPTQuasiNewton struct{}

// Name implements Method.
func (CPTQuasiNewton) Name() string { return "cpt-quasi-newton" }

// NewPoints implements Method.
func (CPTQuasiNewton) NewPoints(m *mesh.Mesh) []mesh.Vec {
	targets := cptTargets(m)
	areas := patchAreas(m)
	out := make([]mesh.Vec, len(m.Points))
	for i, p := range m.Points {
		if areas[i] == 0 {
			out[i] = p
			continue
		}
		grad := p.Sub(targets[i]).Scale(2 * areas[i])
		out[i] = p.Sub(grad.Scale(1.0 / (2 * areas[i])))
	}
	return out
}

// CPTLinearSolve solves the uniform-weight Laplacian system exactly in one
// shot instead of iterating toward it, trading per-step cost for far fewer
// driver iterations on smooth meshes.
type CPTLinearSolve struct{}

// Name implements Method.
func (CPTLinearSolve) Name() string { return "cpt-linear-solve" }

// NewPoints implements Method.
func (CPTLinearSolve) NewPoints(m *mesh.Mesh) []mesh.Vec {
	return solveLaplacian(m, uniformWeights(m))
}

// cptTargets returns each vertex's area-weighted incident-cell centroid.
func cptTargets(m *mesh.Mesh) []mesh.Vec {
	n := len(m.Points)
	areas := make([]float64, n)
	weighted := make([]mesh.Vec, n)
	for ci, c := range m.Cells {
		area := m.CellArea(ci)
		centroid := m.CellCentroid(ci)
		for _, v := range c {
			areas[v] += area
			weighted[v] = weighted[v].Add(centroid.Scale(area))
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

// patchAreas returns the summed area of each vertex's incident cells.
func patchAreas(m *mesh.Mesh) []float64 {
	areas := make([]float64, len(m.Points))
	for ci, c := range m.Cells {
		area := m.CellArea(ci)
		for _, v := range c {
			areas[v] += area
		}
	}
	return areas
}
