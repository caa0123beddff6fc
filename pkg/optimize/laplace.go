package optimize

import "github.com/IamSagarRai/optimesh/pkg/mesh"

// Laplace proposes the arithmetic mean of each vertex's edge-connected
// neighbors. Cheap and strongly smoothing, but it shrinks fine features;
// the driver's clamp keeps it safe on rough meshes.
type Laplace struct{}

// Name implements Method.
func (Laplace) Name() string { return "laplace" }

// NewPoints implements Method.
func (Laplace) NewPoints(m *mesh.Mesh) []mesh.Vec {
	neighbors := m.Neighbors()
	out := make([]mesh.Vec, len(m.Points))
	for i := range m.Points {
		nb := neighbors[i]
		if len(nb) == 0 {
			out[i] = m.Points[i]
			continue
		}
		var sum mesh.Vec
		for _, j := range nb {
			sum = sum.Add(m.Points[j])
		}
		out[i] = sum.Scale(1.0 / float64(len(nb)))
	}
	return out
}
