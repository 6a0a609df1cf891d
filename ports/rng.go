package ports

import (
	"math/rand"
)

// RNG provides seeded random number generation for deterministic operations.
// Every randomized component (sampler shuffling, dataset splitting, optimizer
// search) receives its stream through this port; nothing in the module reads
// process-wide random state.
type RNG interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation. The same (name, seed) pair always yields a stream
	// producing the identical sequence, so runs are replayable across
	// processes.
	SeededStream(name string, seed int64) *rand.Rand
}
