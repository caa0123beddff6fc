package optimize

import (
	"fmt"
	"math"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// Surface is a level set {p : Eval(p) = 0} that committed points are
// projected back onto. Eval and Grad must be well-posed near the surface;
// a vanishing gradient at an off-surface point stalls the projection.
type Surface interface {
	// Eval returns the scalar field value at p; zero means on the surface.
	Eval(p mesh.Vec) float64

	// Grad returns the field gradient at p.
	Grad(p mesh.Vec) mesh.Vec
}

// Sphere is the level set |p - Center| = Radius.
type Sphere struct {
	Center mesh.Vec
	Radius float64
}

// Eval returns |p - Center|^2 - Radius^2.
func (s Sphere) Eval(p mesh.Vec) float64 {
	return p.Sub(s.Center).Norm2() - s.Radius*s.Radius
}

// Grad returns 2 (p - Center).
func (s Sphere) Grad(p mesh.Vec) mesh.Vec {
	return p.Sub(s.Center).Scale(2)
}

// gradFloor protects the Newton step against division by an underflowing
// squared gradient norm.
const gradFloor = 1e-300

// projectToSurface moves every point whose field value exceeds tol in
// magnitude along the Newton direction -f/|g|^2 * g, one correction per
// pass, re-evaluating the field after each pass, until all points satisfy
// the tolerance or the pass limit runs out.
func projectToSurface(points []mesh.Vec, s Surface, tol float64, maxSteps int) error {
	for pass := 0; ; pass++ {
		converged := true
		for i := range points {
			if math.Abs(s.Eval(points[i])) > tol {
				converged = false
				break
			}
		}
		if converged {
			return nil
		}
		if pass >= maxSteps {
			return fmt.Errorf("%w after %d passes", ErrSurfaceStalled, maxSteps)
		}

		for i := range points {
			f := s.Eval(points[i])
			if math.Abs(f) <= tol {
				continue
			}
			g := s.Grad(points[i])
			gg := g.Norm2()
			if gg < gradFloor {
				return fmt.Errorf("%w: vanishing gradient at point %d", ErrSurfaceStalled, i)
			}
			points[i] = points[i].Sub(g.Scale(f / gg))
		}
	}
}
