// Package neural wraps the external neural inference engine behind the
// shape contract it imposes: normalized windows, batches padded to the
// engine's granularity, sentinel filler filtered back out of the results.
// The engine's internals (architecture, training) live outside this module.
package neural

import (
	"context"
	"path/filepath"
	"strings"

	"pickbench/domain/core"
	"pickbench/domain/pick"
	"pickbench/internal/conform"
	"pickbench/ports"
)

// ValidateModelPaths checks the engine's fixed file-extension contract:
// model structure as '.json', weights as '.hdf5'. The file contents belong
// to the engine.
func ValidateModelPaths(structurePath, weightsPath string) error {
	if ext := strings.ToLower(filepath.Ext(structurePath)); ext != ".json" {
		return core.NewConfigError("model_structure", "must be a '.json' file, got "+structurePath)
	}
	if weightsPath != "" {
		if ext := strings.ToLower(filepath.Ext(weightsPath)); ext != ".hdf5" {
			return core.NewConfigError("model_weights", "must be a '.hdf5' file, got "+weightsPath)
		}
	}
	return nil
}

// Client runs the predict-side shape pipeline around an inference engine.
type Client struct {
	engine    ports.InferenceEngine
	conformer *conform.Conformer
}

// NewClient creates a client for the engine with the given batch
// granularity.
func NewClient(engine ports.InferenceEngine, granularity int) (*Client, error) {
	c, err := conform.New(granularity)
	if err != nil {
		return nil, err
	}
	return &Client{engine: engine, conformer: c}, nil
}

// Predict normalizes the windows, pads the batch to the engine granularity
// with sentinel rows, runs inference, and strips the filler predictions.
// The result has exactly one pick per input row, in input order; an engine
// output of NaN for a real row degrades to an absent pick.
func (c *Client) Predict(ctx context.Context, windows [][]float64) ([]pick.Pick, error) {
	padded, filler := c.conformer.Fill(pick.Normalize(windows))

	preds, err := c.engine.Predict(ctx, padded)
	if err != nil {
		return nil, err
	}
	if len(preds) != len(padded) {
		return nil, core.NewShapeError("inference",
			"engine returned a different row count than it was given")
	}

	real, err := c.conformer.Strip(preds, filler)
	if err != nil {
		return nil, err
	}
	return pick.FromFloats(real), nil
}

// TrainingBatch prepares an aligned (windows, labels) pair for the engine's
// training path: normalized and truncated to the granularity so no filler
// labels are introduced.
func (c *Client) TrainingBatch(windows [][]float64, labels []float64) ([][]float64, []float64, error) {
	return c.conformer.Truncate(pick.Normalize(windows), labels)
}
