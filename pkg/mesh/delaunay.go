package mesh

import "math"

// maxFlipPasses bounds the repair loop; a valid mesh settles in a handful
// of passes, the cap only guards against cycling on near-degenerate input.
const maxFlipPasses = 100

// flipEps keeps edges on the cocircular boundary from flipping back and
// forth between passes.
const flipEps = 1e-12

// FlipUntilDelaunay restores local Delaunay-ness after vertex motion by
// flipping the shared diagonal of adjacent cell pairs that violate the
// opposite-angle criterion (the two angles facing a shared edge summing to
// more than pi). No vertex moves; only connectivity within the quadrilateral
// formed by each violating cell pair changes. It returns the total number
// of flips performed.
func (m *Mesh) FlipUntilDelaunay() int {
	total := 0
	for pass := 0; pass < maxFlipPasses; pass++ {
		flips := m.flipPass()
		total += flips
		if flips == 0 {
			break
		}
	}
	return total
}

// flipPass scans every interior edge once and flips violating ones whose
// two cells have not already been rewritten this pass.
func (m *Mesh) flipPass() int {
	flips := 0
	dirty := make(map[int]bool)

	for k, cells := range m.edgeCells() {
		if len(cells) != 2 || dirty[cells[0]] || dirty[cells[1]] {
			continue
		}
		d1, ok1 := opposite(m.Cells[cells[0]], k)
		d2, ok2 := opposite(m.Cells[cells[1]], k)
		if !ok1 || !ok2 || d1 == d2 {
			continue
		}

		u, v := m.Points[k.lo], m.Points[k.hi]
		a1 := angleAt(m.Points[d1], u, v)
		a2 := angleAt(m.Points[d2], u, v)
		if a1+a2 <= math.Pi+flipEps {
			continue
		}

		m.Cells[cells[0]] = [3]int{d1, d2, k.lo}
		m.Cells[cells[1]] = [3]int{d2, d1, k.hi}
		dirty[cells[0]] = true
		dirty[cells[1]] = true
		flips++
	}
	return flips
}

// opposite returns the cell vertex not on edge k.
func opposite(c [3]int, k edgeKey) (int, bool) {
	for _, v := range c {
		if v != k.lo && v != k.hi {
			return v, true
		}
	}
	return 0, false
}
