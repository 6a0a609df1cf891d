// Package conform shapes batches to the external inference engine's
// batch-size-multiple requirement and reverses that shaping on its output.
// The granularity is an accelerator artifact of the engine deployment and
// is injected, never assumed.
package conform

import (
	"fmt"
	"math"

	"pickbench/domain/core"
)

// DefaultGranularity matches the engine configuration this repo usually
// talks to. Callers with a different deployment inject their own.
const DefaultGranularity = 3

// Conformer pads or truncates batches to a multiple of the engine's batch
// granularity.
type Conformer struct {
	granularity int
}

// New creates a conformer for the given batch granularity.
func New(granularity int) (*Conformer, error) {
	if granularity <= 0 {
		return nil, core.NewConfigError("granularity", "must be a positive integer")
	}
	return &Conformer{granularity: granularity}, nil
}

// Granularity returns the configured batch multiple.
func (c *Conformer) Granularity() int {
	return c.granularity
}

// Truncate drops the trailing n mod g rows of windows and labels so no
// filler is introduced and labels stay aligned. Used on the training path.
func (c *Conformer) Truncate(windows [][]float64, labels []float64) ([][]float64, []float64, error) {
	if len(windows) != len(labels) {
		return nil, nil, core.NewShapeError("truncate", "window and label counts differ")
	}
	if len(windows) < c.granularity {
		return nil, nil, core.NewConfigError("truncate", fmt.Sprintf(
			"input of %d rows is shorter than granularity %d", len(windows), c.granularity))
	}
	keep := len(windows) - len(windows)%c.granularity
	return windows[:keep], labels[:keep], nil
}

// Fill appends up to g-1 sentinel rows of NaN windows so the row count is
// the smallest multiple of g at or above the input count. The returned mask
// is true for filler rows; real rows keep their order and identity. Used on
// the prediction path so no real row is dropped.
func (c *Conformer) Fill(windows [][]float64) ([][]float64, []bool) {
	n := len(windows)
	mod := n % c.granularity
	filler := make([]bool, n)
	if mod == 0 {
		return windows, filler
	}

	width := 0
	if n > 0 {
		width = len(windows[0])
	}
	add := c.granularity - mod
	out := make([][]float64, n, n+add)
	copy(out, windows)
	for i := 0; i < add; i++ {
		row := make([]float64, width)
		for j := range row {
			row[j] = math.NaN()
		}
		out = append(out, row)
		filler = append(filler, true)
	}
	return out, filler
}

// Strip removes the predictions made for filler rows, restoring the
// original row count and order.
func (c *Conformer) Strip(preds []float64, filler []bool) ([]float64, error) {
	if len(preds) != len(filler) {
		return nil, core.NewShapeError("strip", "prediction and filler mask lengths differ")
	}
	out := make([]float64, 0, len(preds))
	for i, p := range preds {
		if filler[i] {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
