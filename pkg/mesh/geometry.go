package mesh

import "math"

// CellArea returns the (unsigned) area of cell ci.
func (m *Mesh) CellArea(ci int) float64 {
	c := m.Cells[ci]
	u := m.Points[c[1]].Sub(m.Points[c[0]])
	v := m.Points[c[2]].Sub(m.Points[c[0]])
	return 0.5 * u.Cross(v).Norm()
}

// CellCentroid returns the barycenter of cell ci.
func (m *Mesh) CellCentroid(ci int) Vec {
	c := m.Cells[ci]
	return m.Points[c[0]].Add(m.Points[c[1]]).Add(m.Points[c[2]]).Scale(1.0 / 3.0)
}

// CellCircumcenter returns the circumcenter of cell ci. For surface meshes
// the circumcenter lies in the cell's plane. Degenerate (zero-area) cells
// yield the centroid instead.
func (m *Mesh) CellCircumcenter(ci int) Vec {
	c := m.Cells[ci]
	a := m.Points[c[0]]
	u := m.Points[c[1]].Sub(a)
	v := m.Points[c[2]].Sub(a)
	n := u.Cross(v)
	nn := n.Norm2()
	if nn == 0 {
		return m.CellCentroid(ci)
	}
	w := n.Cross(u).Scale(v.Norm2()).Add(v.Cross(n).Scale(u.Norm2()))
	return a.Add(w.Scale(1.0 / (2.0 * nn)))
}

// CellInradius returns the incircle radius of cell ci: 2A / perimeter.
func (m *Mesh) CellInradius(ci int) float64 {
	c := m.Cells[ci]
	a := m.Points[c[1]].Sub(m.Points[c[0]]).Norm()
	b := m.Points[c[2]].Sub(m.Points[c[1]]).Norm()
	d := m.Points[c[0]].Sub(m.Points[c[2]]).Norm()
	p := a + b + d
	if p == 0 {
		return 0
	}
	return 2.0 * m.CellArea(ci) / p
}

// CellInradii returns the incircle radius of every cell.
func (m *Mesh) CellInradii() []float64 {
	r := make([]float64, len(m.Cells))
	for ci := range m.Cells {
		r[ci] = m.CellInradius(ci)
	}
	return r
}

// CellCircumradius returns the circumcircle radius of cell ci.
func (m *Mesh) CellCircumradius(ci int) float64 {
	cc := m.CellCircumcenter(ci)
	return m.Points[m.Cells[ci][0]].Sub(cc).Norm()
}

// CellQuality returns the radius ratio 2 r_in / r_circ of cell ci,
// normalized so an equilateral triangle scores 1.0 and a degenerate
// triangle scores 0.
func (m *Mesh) CellQuality(ci int) float64 {
	rc := m.CellCircumradius(ci)
	if rc == 0 {
		return 0
	}
	return 2.0 * m.CellInradius(ci) / rc
}

// angleAt returns the interior angle of the triangle (a, b, c) at vertex a.
func angleAt(a, b, c Vec) float64 {
	u := b.Sub(a)
	v := c.Sub(a)
	den := u.Norm() * v.Norm()
	if den == 0 {
		return 0
	}
	cos := u.Dot(v) / den
	// Clamp for numerical safety before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// CellMinAngle returns the smallest interior angle of cell ci in radians.
func (m *Mesh) CellMinAngle(ci int) float64 {
	c := m.Cells[ci]
	a, b, d := m.Points[c[0]], m.Points[c[1]], m.Points[c[2]]
	min := angleAt(a, b, d)
	if t := angleAt(b, d, a); t < min {
		min = t
	}
	if t := angleAt(d, a, b); t < min {
		min = t
	}
	return min
}

// ControlVolumes returns the Voronoi control-volume measure and centroid of
// every vertex, accumulated cell by cell from the circumcenter and edge
// midpoints with signed sub-areas. Signed pieces keep the per-cell sum
// exact even when an obtuse cell's circumcenter falls outside the cell.
// Vertices with a vanishing control volume keep their current position as
// centroid.
func (m *Mesh) ControlVolumes() (vols []float64, centroids []Vec) {
	n := len(m.Points)
	vols = make([]float64, n)
	weighted := make([]Vec, n)

	for ci, c := range m.Cells {
		a := m.Points[c[0]]
		u := m.Points[c[1]].Sub(a)
		v := m.Points[c[2]].Sub(a)
		normal := u.Cross(v)
		nn := normal.Norm()
		if nn == 0 {
			continue
		}
		nhat := normal.Scale(1.0 / nn)
		cc := m.CellCircumcenter(ci)

		for i := 0; i < 3; i++ {
			p := m.Points[c[i]]
			mj := p.Add(m.Points[c[(i+1)%3]]).Scale(0.5)
			mk := p.Add(m.Points[c[(i+2)%3]]).Scale(0.5)

			// The vertex's piece of this cell is the quad (p, mj, cc, mk),
			// split into two triangles sharing the circumcenter.
			a1 := 0.5 * mj.Sub(p).Cross(cc.Sub(p)).Dot(nhat)
			a2 := 0.5 * cc.Sub(p).Cross(mk.Sub(p)).Dot(nhat)
			c1 := p.Add(mj).Add(cc).Scale(1.0 / 3.0)
			c2 := p.Add(cc).Add(mk).Scale(1.0 / 3.0)

			vols[c[i]] += a1 + a2
			weighted[c[i]] = weighted[c[i]].Add(c1.Scale(a1)).Add(c2.Scale(a2))
		}
	}

	centroids = make([]Vec, n)
	for i := range centroids {
		if math.Abs(vols[i]) > 0 {
			centroids[i] = weighted[i].Scale(1.0 / vols[i])
		} else {
			centroids[i] = m.Points[i]
		}
	}
	return vols, centroids
}
