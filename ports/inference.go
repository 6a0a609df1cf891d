package ports

import (
	"context"
)

// InferenceEngine is the neural pick predictor, an external collaborator.
// The engine consumes batches whose row count is a multiple of its batch
// granularity (an accelerator artifact, injected through the batch
// conformer) shaped [batch, window, 1] on the wire; here a row is the
// window's samples and the channel axis is the engine's concern. It returns
// one scalar pick offset per input row, NaN for filler rows.
type InferenceEngine interface {
	Predict(ctx context.Context, windows [][]float64) ([]float64, error)
}
