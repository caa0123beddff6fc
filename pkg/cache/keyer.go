package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ResultKeyOpts are the smoothing parameters that distinguish cached
// results for the same input mesh.
type ResultKeyOpts struct {
	Method   string  `json:"method"`
	Tol      float64 `json:"tol"`
	MaxSteps int     `json:"max_steps"`
	Omega    float64 `json:"omega"`
	Boundary string  `json:"boundary,omitempty"` // boundary policy identifier
}

// ArtifactKeyOpts are the render parameters that distinguish cached
// artifacts for the same mesh.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Size   float64 `json:"size,omitempty"`
	Edges  bool    `json:"edges,omitempty"`
}

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	// ResultKey keys a smoothed mesh by the input mesh's content hash and
	// the smoothing options.
	ResultKey(meshHash string, opts ResultKeyOpts) string

	// ArtifactKey keys a rendered image by the mesh's content hash and
	// the render options.
	ArtifactKey(meshHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(meshHash string, opts ResultKeyOpts) string {
	return hashKey("result", meshHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(meshHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", meshHash, opts)
}

// hashKey generates "prefix:hash(parts...)".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
