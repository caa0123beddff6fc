package optimize

import "testing"

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Omega != DefaultOmega {
		t.Errorf("Omega = %v, want %v", o.Omega, DefaultOmega)
	}
	if o.ImplicitSurfaceTol != DefaultSurfaceTol {
		t.Errorf("ImplicitSurfaceTol = %v, want %v", o.ImplicitSurfaceTol, DefaultSurfaceTol)
	}
	if o.MaxSurfaceSteps != DefaultMaxSurfaceSteps {
		t.Errorf("MaxSurfaceSteps = %v, want %v", o.MaxSurfaceSteps, DefaultMaxSurfaceSteps)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsDefaultsKeepExplicitValues(t *testing.T) {
	o := Options{Omega: 0.3, MaxSurfaceSteps: 7}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Omega != 0.3 {
		t.Errorf("Omega = %v, want 0.3", o.Omega)
	}
	if o.MaxSurfaceSteps != 7 {
		t.Errorf("MaxSurfaceSteps = %v, want 7", o.MaxSurfaceSteps)
	}

	// Idempotent: a second call must not reset anything.
	o.Omega = 0.9
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Omega != 0.9 {
		t.Errorf("Omega = %v after revalidation, want 0.9", o.Omega)
	}
}
