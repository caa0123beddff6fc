// Package cache stores smoothing results and rendered artifacts between
// runs. Smoothing is deterministic in the mesh and its options, so results
// are keyed by content hash and can be replayed instead of recomputed.
//
// Backends:
//   - file: entries under a directory, for CLI usage (XDG cache dir)
//   - redis: shared cache for multi-machine setups
//   - null: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLs per entry class. Results and artifacts are pure functions of their
// keys, so the TTLs exist only to bound disk usage, not for correctness.
const (
	// TTLResult is how long smoothed meshes are kept.
	TTLResult = 30 * 24 * time.Hour

	// TTLArtifact is how long rendered images are kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-blob cache with per-entry expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
