package mesh

import (
	"fmt"
	"math"
)

// Stats summarizes element quality across the mesh.
type Stats struct {
	NumPoints   int
	NumCells    int
	MinQuality  float64 // worst radius ratio, 1.0 is equilateral
	AvgQuality  float64
	MinAngleDeg float64 // smallest interior angle anywhere, degrees
}

// ComputeStats evaluates quality statistics over all cells.
func (m *Mesh) ComputeStats() Stats {
	s := Stats{
		NumPoints:   len(m.Points),
		NumCells:    len(m.Cells),
		MinQuality:  1.0,
		MinAngleDeg: 180.0,
	}
	if len(m.Cells) == 0 {
		s.MinQuality = 0
		s.MinAngleDeg = 0
		return s
	}
	sum := 0.0
	for ci := range m.Cells {
		q := m.CellQuality(ci)
		sum += q
		if q < s.MinQuality {
			s.MinQuality = q
		}
		if a := m.CellMinAngle(ci) * 180.0 / math.Pi; a < s.MinAngleDeg {
			s.MinAngleDeg = a
		}
	}
	s.AvgQuality = sum / float64(len(m.Cells))
	return s
}

// String renders the stats on one line.
func (s Stats) String() string {
	return fmt.Sprintf("%d points, %d cells, quality min %.4f avg %.4f, min angle %.2f°",
		s.NumPoints, s.NumCells, s.MinQuality, s.AvgQuality, s.MinAngleDeg)
}
