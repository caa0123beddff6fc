package mesh

import (
	"math"
	"testing"
)

const geomTol = 1e-12

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func nearVec(a, b Vec, tol float64) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}

// rightTriangle is the unit right triangle with the right angle at the origin.
func rightTriangle(t *testing.T) *Mesh {
	t.Helper()
	m, err := New([]Vec{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, [][3]int{{0, 1, 2}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func equilateralTriangle(t *testing.T) *Mesh {
	t.Helper()
	m, err := New(
		[]Vec{{0, 0, 0}, {1, 0, 0}, {0.5, math.Sqrt(3) / 2, 0}},
		[][3]int{{0, 1, 2}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestCellArea(t *testing.T) {
	m := rightTriangle(t)
	if got := m.CellArea(0); !near(got, 0.5, geomTol) {
		t.Errorf("CellArea = %g, want 0.5", got)
	}
}

func TestCellCentroid(t *testing.T) {
	m := rightTriangle(t)
	want := Vec{1.0 / 3.0, 1.0 / 3.0, 0}
	if got := m.CellCentroid(0); !nearVec(got, want, geomTol) {
		t.Errorf("CellCentroid = %v, want %v", got, want)
	}
}

func TestCellCircumcenter(t *testing.T) {
	m := rightTriangle(t)
	// The circumcenter of a right triangle is the hypotenuse midpoint.
	want := Vec{0.5, 0.5, 0}
	if got := m.CellCircumcenter(0); !nearVec(got, want, geomTol) {
		t.Errorf("CellCircumcenter = %v, want %v", got, want)
	}
}

func TestCellCircumcenterDegenerate(t *testing.T) {
	m, err := New([]Vec{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}, [][3]int{{0, 1, 2}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Collinear cells fall back to the centroid.
	want := Vec{1, 0, 0}
	if got := m.CellCircumcenter(0); !nearVec(got, want, geomTol) {
		t.Errorf("CellCircumcenter = %v, want %v", got, want)
	}
	if got := m.CellArea(0); got != 0 {
		t.Errorf("CellArea = %g, want 0", got)
	}
	if got := m.CellQuality(0); got != 0 {
		t.Errorf("CellQuality = %g, want 0", got)
	}
}

func TestCellRadii(t *testing.T) {
	m := rightTriangle(t)

	wantCircum := math.Sqrt2 / 2
	if got := m.CellCircumradius(0); !near(got, wantCircum, geomTol) {
		t.Errorf("CellCircumradius = %g, want %g", got, wantCircum)
	}

	// r_in = 2A / p with A = 1/2 and p = 2 + sqrt(2).
	wantIn := 1.0 / (2.0 + math.Sqrt2)
	if got := m.CellInradius(0); !near(got, wantIn, geomTol) {
		t.Errorf("CellInradius = %g, want %g", got, wantIn)
	}

	radii := m.CellInradii()
	if len(radii) != 1 || !near(radii[0], wantIn, geomTol) {
		t.Errorf("CellInradii = %v, want [%g]", radii, wantIn)
	}
}

func TestCellQuality(t *testing.T) {
	eq := equilateralTriangle(t)
	if got := eq.CellQuality(0); !near(got, 1.0, 1e-9) {
		t.Errorf("equilateral quality = %g, want 1", got)
	}

	rt := rightTriangle(t)
	got := rt.CellQuality(0)
	if got <= 0 || got >= 1 {
		t.Errorf("right-triangle quality = %g, want in (0, 1)", got)
	}
}

func TestCellMinAngle(t *testing.T) {
	eq := equilateralTriangle(t)
	if got := eq.CellMinAngle(0); !near(got, math.Pi/3, 1e-9) {
		t.Errorf("equilateral min angle = %g, want %g", got, math.Pi/3)
	}

	rt := rightTriangle(t)
	if got := rt.CellMinAngle(0); !near(got, math.Pi/4, 1e-9) {
		t.Errorf("right-triangle min angle = %g, want %g", got, math.Pi/4)
	}
}

func TestControlVolumes(t *testing.T) {
	m := squareWithCenter(t)
	vols, centroids := m.ControlVolumes()

	// Control volumes partition the mesh, so they sum to the total area.
	sum := 0.0
	for _, v := range vols {
		sum += v
	}
	if !near(sum, 1.0, 1e-12) {
		t.Errorf("control volumes sum to %g, want 1", sum)
	}

	// The center vertex owns half the square by symmetry and its Voronoi
	// region is centered on it.
	if !near(vols[4], 0.5, 1e-12) {
		t.Errorf("center control volume = %g, want 0.5", vols[4])
	}
	if !nearVec(centroids[4], Vec{0.5, 0.5, 0}, 1e-12) {
		t.Errorf("center control centroid = %v, want (0.5, 0.5)", centroids[4])
	}
}
