package optimize

import (
	"errors"
	"math"
	"testing"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

func TestSphereEvalGrad(t *testing.T) {
	s := Sphere{Center: mesh.Vec{X: 1, Y: 2, Z: 3}, Radius: 2}

	on := mesh.Vec{X: 3, Y: 2, Z: 3}
	if f := s.Eval(on); math.Abs(f) > 1e-12 {
		t.Errorf("Eval(on-surface) = %g, want 0", f)
	}
	if f := s.Eval(s.Center); math.Abs(f+4) > 1e-12 {
		t.Errorf("Eval(center) = %g, want -4", f)
	}
	g := s.Grad(on)
	if g != (mesh.Vec{X: 4, Y: 0, Z: 0}) {
		t.Errorf("Grad = %v, want (4, 0, 0)", g)
	}
}

func TestProjectToSurface(t *testing.T) {
	s := Sphere{Radius: 1}
	points := []mesh.Vec{
		{X: 2, Y: 0, Z: 0},
		{X: 0.3, Y: 0.4, Z: 0},
		{X: -1, Y: 1, Z: 1},
	}

	if err := projectToSurface(points, s, 1e-10, 50); err != nil {
		t.Fatalf("projectToSurface: %v", err)
	}
	for i, p := range points {
		if f := math.Abs(s.Eval(p)); f > 1e-10 {
			t.Errorf("point %d still off surface: |f| = %g", i, f)
		}
	}
}

func TestProjectToSurfaceVanishingGradient(t *testing.T) {
	s := Sphere{Radius: 1}
	// The sphere's center has zero gradient; Newton has no direction there.
	points := []mesh.Vec{{X: 0, Y: 0, Z: 0}}

	err := projectToSurface(points, s, 1e-10, 50)
	if !errors.Is(err, ErrSurfaceStalled) {
		t.Errorf("err = %v, want ErrSurfaceStalled", err)
	}
}

type flatLine struct{}

// Eval is constant off zero so no Newton step count can satisfy it.
func (flatLine) Eval(mesh.Vec) float64 { return 1 }

func (flatLine) Grad(mesh.Vec) mesh.Vec { return mesh.Vec{X: 1} }

func TestProjectToSurfaceStepLimit(t *testing.T) {
	points := []mesh.Vec{{X: 0, Y: 0, Z: 0}}
	err := projectToSurface(points, flatLine{}, 1e-10, 5)
	if !errors.Is(err, ErrSurfaceStalled) {
		t.Errorf("err = %v, want ErrSurfaceStalled", err)
	}
}
