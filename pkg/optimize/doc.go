// Package optimize relocates mesh vertices to improve element quality
// without changing connectivity.
//
// The heart of the package is the relaxation driver behind [Optimize]: a
// fixed-point iteration that asks a point-update [Method] for one proposed
// coordinate per vertex, applies the boundary policy, damps the update with
// the relaxation factor, clamps every vertex's step to half the minimum
// incircle radius of its incident cells (the geometric guarantee that no
// triangle can invert within one step), commits, optionally projects points
// back onto an implicit surface, restores local Delaunay-ness and tests
// convergence.
//
// Point-update methods are pluggable strategies selected by name. Names are
// tolerant of case, spaces and parentheses: "ODT (block diagonal)" and
// "odt-block-diagonal" select the same thing. ODT variants other than the
// fixed-point one bypass the driver entirely and minimize the ODT energy
// with a general-purpose nonlinear optimizer.
//
// # Example
//
//	m, _ := mesh.New(points, cells)
//	res, err := optimize.Optimize(m, "lloyd", 1e-10, 100, optimize.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("converged after %d steps, residual %g\n", res.Steps, res.Residual)
package optimize
