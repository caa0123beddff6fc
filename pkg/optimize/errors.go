package optimize

import "errors"

var (
	// ErrUnknownMethod is returned by [Optimize] when the normalized method
	// name matches no registry entry and no nonlinear ODT selector. It is
	// surfaced before any mesh mutation.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrInvalidOmega is returned when a nonlinear ODT method is selected
	// together with a relaxation factor other than 1.0. The nonlinear path
	// has no damping knob; passing one is a usage error, checked before
	// delegating to the optimizer.
	ErrInvalidOmega = errors.New("relaxation factor must be 1.0 for nonlinear ODT methods")

	// ErrSurfaceStalled is returned when the implicit-surface projection
	// fails to bring every point within tolerance in
	// [Options.MaxSurfaceSteps] passes, or when a gradient norm underflows.
	// The mesh keeps the last committed positions.
	ErrSurfaceStalled = errors.New("implicit surface projection did not converge")

	// ErrBadProposal is returned when a method yields a proposal slice
	// whose length does not match the mesh's vertex count.
	ErrBadProposal = errors.New("method returned wrong number of points")
)
