package ports

import (
	"pickbench/domain/params"
	"pickbench/domain/pick"
)

// Picker maps a waveform window and an immutable parameter snapshot to a
// single arrival pick. Implementations are pure functions of their inputs:
// no hidden state, no side effects, so batch evaluation may run in parallel
// without locking.
type Picker interface {
	// Pick applies the detector to one window. A window in which the
	// detector finds no trigger yields an absent pick, never an error.
	Pick(window []float64, p params.Vector) pick.Pick

	// PickBatch applies the same parameter vector to every window
	// independently. A trigger-less row degrades to an absent pick while
	// the rest of the batch proceeds.
	PickBatch(windows [][]float64, p params.Vector) []pick.Pick
}
