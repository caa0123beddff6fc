package optimize

import (
	"gonum.org/v1/gonum/mat"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// solveLaplacian places every interior vertex at the weighted average of
// its neighbors in a single global solve, with boundary vertices held at
// their current positions:
//
//	sum_j w_ij (x_i - x_j) = 0   for interior i
//
// The system is assembled dense and solved with an LU factorization; the
// meshes this library targets are far below the size where a sparse solver
// would pay off. If the solve fails (fully degenerate weights) the current
// positions are returned unchanged.
func solveLaplacian(m *mesh.Mesh, weights map[[2]int]float64) []mesh.Vec {
	out := make([]mesh.Vec, len(m.Points))
	copy(out, m.Points)

	boundary := m.BoundaryPoints()
	index := make([]int, len(m.Points)) // vertex -> interior row, -1 for boundary
	interior := make([]int, 0, len(m.Points))
	for i := range m.Points {
		if boundary[i] {
			index[i] = -1
			continue
		}
		index[i] = len(interior)
		interior = append(interior, i)
	}
	if len(interior) == 0 {
		return out
	}

	nI := len(interior)
	a := mat.NewDense(nI, nI, nil)
	b := mat.NewDense(nI, 3, nil)

	for e, w := range weights {
		i, j := e[0], e[1]
		ri, rj := index[i], index[j]
		if ri >= 0 {
			a.Set(ri, ri, a.At(ri, ri)+w)
			if rj >= 0 {
				a.Set(ri, rj, a.At(ri, rj)-w)
			} else {
				p := m.Points[j]
				b.Set(ri, 0, b.At(ri, 0)+w*p.X)
				b.Set(ri, 1, b.At(ri, 1)+w*p.Y)
				b.Set(ri, 2, b.At(ri, 2)+w*p.Z)
			}
		}
		if rj >= 0 {
			a.Set(rj, rj, a.At(rj, rj)+w)
			if ri >= 0 {
				a.Set(rj, ri, a.At(rj, ri)-w)
			} else {
				p := m.Points[i]
				b.Set(rj, 0, b.At(rj, 0)+w*p.X)
				b.Set(rj, 1, b.At(rj, 1)+w*p.Y)
				b.Set(rj, 2, b.At(rj, 2)+w*p.Z)
			}
		}
	}

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return out
	}
	for r, v := range interior {
		out[v] = mesh.Vec{X: x.At(r, 0), Y: x.At(r, 1), Z: x.At(r, 2)}
	}
	return out
}

// uniformWeights returns weight 1 for every mesh edge.
func uniformWeights(m *mesh.Mesh) map[[2]int]float64 {
	w := make(map[[2]int]float64, 3*len(m.Cells)/2)
	for _, c := range m.Cells {
		for i := 0; i < 3; i++ {
			w[edgeIndex(c[i], c[(i+1)%3])] = 1
		}
	}
	return w
}
