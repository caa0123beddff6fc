package optimize

import (
	"math"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// Lloyd proposes each vertex's Voronoi control-volume centroid, the
// classical CVT fixed-point update. Registered under both "lloyd" and
// "cvt-diagonal" (the diagonal-Hessian reading of the same step).
type Lloyd struct {
	name string
}

// Name implements Method.
func (l Lloyd) Name() string {
	if l.name == "" {
		return "lloyd"
	}
	return l.name
}

// NewPoints implements Method.
func (Lloyd) NewPoints(m *mesh.Mesh) []mesh.Vec {
	_, centroids := m.ControlVolumes()
	return centroids
}

// CVTBlockDiagonal takes the per-vertex Newton step of the CVT energy with
// its dominant 2m_i·I Hessian blocks; cross-vertex curvature terms are
// dropped. Written as gradient / block-solve rather than a centroid copy so
// the damping structure stays explicit.
type CVTBlockDiagonal struct{}

// Name implements Method.
func (CVTBlockDiagonal) Name() string { return "cvt-block-diagonal" }

// NewPoints implements Method.
func (CVTBlockDiagonal) NewPoints(m *mesh.Mesh) []mesh.Vec {
	vols, centroids := m.ControlVolumes()
	out := make([]mesh.Vec, len(m.Points))
	for i, p := range m.Points {
		v := vols[i]
		if math.Abs(v) == 0 {
			out[i] = p
			continue
		}
		// grad F_i = 2 m_i (x_i - c_i); H_i ≈ 2 m_i I.
		grad := p.Sub(centroids[i]).Scale(2 * v)
		out[i] = p.Sub(grad.Scale(1.0 / (2 * v)))
	}
	return out
}

// CVTFull solves the coupled stationarity system in one shot: every
// interior vertex is placed at the cotangent-weighted average of its
// neighbors with boundary vertices held fixed, which is the linearization
// of the CVT energy around the current triangulation.
type CVTFull struct{}

// Name implements Method.
func (CVTFull) Name() string { return "cvt-full" }

// NewPoints implements Method.
func (CVTFull) NewPoints(m *mesh.Mesh) []mesh.Vec {
	return solveLaplacian(m, cotangentWeights(m))
}

// cotangentWeights returns the (cot α + cot β)/2 edge weights, the
// covolume-over-edge-length ratios of the current triangulation.
func cotangentWeights(m *mesh.Mesh) map[[2]int]float64 {
	w := make(map[[2]int]float64, 3*len(m.Cells)/2)
	for _, c := range m.Cells {
		for i := 0; i < 3; i++ {
			opp := m.Points[c[i]]
			a := m.Points[c[(i+1)%3]]
			b := m.Points[c[(i+2)%3]]
			u := a.Sub(opp)
			v := b.Sub(opp)
			cross := u.Cross(v).Norm()
			if cross == 0 {
				continue
			}
			cot := u.Dot(v) / cross
			key := edgeIndex(c[(i+1)%3], c[(i+2)%3])
			w[key] += 0.5 * cot
		}
	}
	return w
}

func edgeIndex(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
