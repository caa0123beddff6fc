// Package mesh implements the triangle mesh that the smoothing driver
// operates on: vertex coordinates, cell connectivity, boundary
// classification, per-cell geometry and local Delaunay repair.
//
// A Mesh owns its vertex positions and cell connectivity. Positions may be
// mutated freely between operations (the smoothing driver does so every
// iteration); connectivity must only change through [Mesh.FlipUntilDelaunay]
// or by building a new mesh with [New], because derived data such as the
// boundary classification is cached against it.
package mesh

import (
	"errors"
	"fmt"
)

// Sentinel errors for mesh construction.
var (
	// ErrCellIndex is returned by [New] when a cell references a vertex
	// index outside the point range.
	ErrCellIndex = errors.New("cell index out of range")

	// ErrDegenerateCell is returned by [New] when a cell repeats a vertex.
	ErrDegenerateCell = errors.New("cell repeats a vertex")
)

// Mesh is a triangulation: an ordered sequence of vertex positions and a
// set of cells, each an index triple into Points. Cell winding carries no
// meaning; all geometric quantities are winding-independent.
type Mesh struct {
	Points []Vec
	Cells  [][3]int

	boundary []bool // lazy boundary-point classification
}

// New builds a mesh from points and cells, validating every cell index.
func New(points []Vec, cells [][3]int) (*Mesh, error) {
	n := len(points)
	for ci, c := range cells {
		for _, v := range c {
			if v < 0 || v >= n {
				return nil, fmt.Errorf("cell %d: %w: %d (have %d points)", ci, ErrCellIndex, v, n)
			}
		}
		if c[0] == c[1] || c[1] == c[2] || c[0] == c[2] {
			return nil, fmt.Errorf("cell %d: %w: %v", ci, ErrDegenerateCell, c)
		}
	}
	return &Mesh{Points: points, Cells: cells}, nil
}

// Clone returns a deep copy of the mesh. Cached classifications are not
// carried over and will be recomputed on demand.
func (m *Mesh) Clone() *Mesh {
	points := make([]Vec, len(m.Points))
	copy(points, m.Points)
	cells := make([][3]int, len(m.Cells))
	copy(cells, m.Cells)
	return &Mesh{Points: points, Cells: cells}
}

// NumPoints returns the number of vertices.
func (m *Mesh) NumPoints() int { return len(m.Points) }

// NumCells returns the number of cells.
func (m *Mesh) NumCells() int { return len(m.Cells) }

// edgeKey is an undirected edge identifier.
type edgeKey struct{ lo, hi int }

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// edgeCells maps every undirected edge to the cells containing it.
func (m *Mesh) edgeCells() map[edgeKey][]int {
	ec := make(map[edgeKey][]int, 3*len(m.Cells)/2)
	for ci, c := range m.Cells {
		for i := 0; i < 3; i++ {
			k := newEdgeKey(c[i], c[(i+1)%3])
			ec[k] = append(ec[k], ci)
		}
	}
	return ec
}

// BoundaryPoints classifies every vertex: true entries lie on the mesh
// boundary. A vertex is a boundary point when it is an endpoint of an edge
// contained in exactly one cell. The classification is computed once and
// cached; it is invariant under vertex motion and Delaunay flips.
func (m *Mesh) BoundaryPoints() []bool {
	if m.boundary != nil {
		return m.boundary
	}
	b := make([]bool, len(m.Points))
	for k, cells := range m.edgeCells() {
		if len(cells) == 1 {
			b[k.lo] = true
			b[k.hi] = true
		}
	}
	m.boundary = b
	return b
}

// VertexCells returns, for every vertex, the indices of its incident cells.
// Vertices touching no cell get an empty list.
func (m *Mesh) VertexCells() [][]int {
	vc := make([][]int, len(m.Points))
	for ci, c := range m.Cells {
		for _, v := range c {
			vc[v] = append(vc[v], ci)
		}
	}
	return vc
}

// Neighbors returns, for every vertex, the vertices it shares an edge with.
func (m *Mesh) Neighbors() [][]int {
	nb := make([][]int, len(m.Points))
	seen := make(map[edgeKey]bool, 3*len(m.Cells)/2)
	for _, c := range m.Cells {
		for i := 0; i < 3; i++ {
			k := newEdgeKey(c[i], c[(i+1)%3])
			if seen[k] {
				continue
			}
			seen[k] = true
			nb[k.lo] = append(nb[k.lo], k.hi)
			nb[k.hi] = append(nb[k.hi], k.lo)
		}
	}
	return nb
}
