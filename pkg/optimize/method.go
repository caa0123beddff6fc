package optimize

import (
	"sort"
	"strings"
	"sync"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
)

// Method is a point-update strategy: given the current mesh it proposes one
// new coordinate per vertex, in vertex order. Implementations must be pure
// functions of the mesh state and must not mutate it. Proposals for
// boundary vertices are ignored; the driver overwrites them according to
// the boundary policy.
type Method interface {
	// Name returns the normalized registry name, e.g. "cpt-fixed-point".
	Name() string

	// NewPoints proposes a new position for every vertex.
	NewPoints(m *mesh.Mesh) []mesh.Vec
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Method{}
)

// Register adds a method to the registry under its normalized name,
// replacing any previous entry. Built-in methods register themselves;
// callers may register their own strategies before invoking [Optimize].
func Register(m Method) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[NormalizeName(m.Name())] = m
}

// Lookup resolves a normalized name to a registered method.
func Lookup(name string) (Method, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[name]
	return m, ok
}

// Names returns the sorted normalized names of all registered methods.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NormalizeName canonicalizes a user-supplied method name: lower-case,
// split on hyphens, spaces and parentheses, empty tokens dropped, rejoined
// with hyphens. "ODT  (block diagonal)" becomes "odt-block-diagonal".
func NormalizeName(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == '-' || r == ' ' || r == '(' || r == ')'
	})
	return strings.Join(fields, "-")
}

// nonlinearSelector reports whether a normalized name routes to the
// nonlinear ODT path, and with which optimizer selector. Every "odt-*"
// name except "odt-fixed-point" does.
func nonlinearSelector(normalized string) (string, bool) {
	const prefix = "odt-"
	if !strings.HasPrefix(normalized, prefix) {
		return "", false
	}
	sel := normalized[len(prefix):]
	if sel == "fixed-point" {
		return "", false
	}
	return sel, true
}

func init() {
	Register(Laplace{})
	Register(Lloyd{name: "lloyd"})
	Register(Lloyd{name: "cvt-diagonal"})
	Register(CVTBlockDiagonal{})
	Register(CVTFull{})
	Register(CPTFixedPoint{})
	Register(CPTQuasiNewton{})
	Register(CPTLinearSolve{})
	Register(ODTFixedPoint{})
}
