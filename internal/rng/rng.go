// Package rng implements the seeded-stream port on math/rand sources.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"

	"pickbench/ports"
)

// Factory derives independent deterministic streams from a base seed and an
// operation name. Distinct names yield uncorrelated streams even under the
// same seed, so the sampler and optimizer never consume each other's draws.
type Factory struct{}

var _ ports.RNG = (*Factory)(nil)

// NewFactory creates a stream factory.
func NewFactory() *Factory {
	return &Factory{}
}

// SeededStream creates a deterministic generator for a named operation.
func (f *Factory) SeededStream(name string, seed int64) *rand.Rand {
	sum := sha256.Sum256([]byte(name))
	derived := int64(binary.LittleEndian.Uint64(sum[:8])) ^ seed
	return rand.New(rand.NewSource(derived))
}
