// Package sampler turns a labeled dataset into randomized, repeatable
// (window, pick-offset) training and evaluation samples. Every draw comes
// from the caller-supplied generator, so the same seed and dataset always
// produce bit-identical arrays.
package sampler

import (
	"fmt"
	"math/rand"

	"pickbench/domain/core"
	"pickbench/domain/pick"
)

// Config controls window extraction and augmentation.
type Config struct {
	// WindowLen is the extracted window length in samples. Zero derives
	// the largest length that still leaves room for the full perturbation
	// range on either side of a centered pick.
	WindowLen int

	// Perturb is the symmetric perturbation range in samples: each pick
	// lands at an independent uniform offset in [-Perturb, +Perturb]
	// around the window center.
	Perturb int

	// Repeat applies the perturbation independently this many times per
	// dataset row, multiplying the row count. Each repeat takes fresh
	// draws, so repeated rows are diverse samples, not duplicates.
	Repeat int
}

// DefaultPerturb is the documented perturbation range.
const DefaultPerturb = 50

// Shuffle extracts one perturbed window per dataset row per repeat. The
// returned label slice holds the reference pick's new offset within its
// window; labels are always known picks by construction.
//
// For each row with trace length L, reference pick p and window length W,
// a draw d in [-Perturb, +Perturb] places the window start at p - W/2 - d,
// so the pick sits at offset W/2 + d. A start outside the trace is a shape
// error: that pick cannot be recentered within the available samples.
func Shuffle(ds pick.Dataset, cfg Config, rng *rand.Rand) ([][]float64, []float64, error) {
	if cfg.Perturb <= 0 {
		return nil, nil, core.NewConfigError("perturb", "must be positive")
	}
	if cfg.Repeat < 1 {
		return nil, nil, core.NewConfigError("repeat", "must be at least 1")
	}
	if err := ds.Validate(); err != nil {
		return nil, nil, err
	}
	if ds.Len() == 0 {
		return [][]float64{}, []float64{}, nil
	}

	windowLen := cfg.WindowLen
	if windowLen == 0 {
		windowLen = len(ds.Traces[0]) - 2*cfg.Perturb
	}
	if windowLen <= 0 {
		return nil, nil, core.NewConfigError("window_len",
			"trace too short for perturbation range")
	}

	n := ds.Len() * cfg.Repeat
	windows := make([][]float64, 0, n)
	labels := make([]float64, 0, n)

	for r := 0; r < cfg.Repeat; r++ {
		for i, trace := range ds.Traces {
			ref := ds.Picks[i]
			if ref.IsNone() {
				return nil, nil, core.NewRowShapeError(i,
					"row has no reference pick to recenter")
			}

			d := rng.Intn(2*cfg.Perturb+1) - cfg.Perturb
			start := int(ref.Offset) - windowLen/2 - d
			if start < 0 || start+windowLen > len(trace) {
				return nil, nil, core.NewRowShapeError(i, fmt.Sprintf(
					"pick at %.0f cannot be centered in trace of %d samples (window %d, shift %d)",
					ref.Offset, len(trace), windowLen, d))
			}

			window := make([]float64, windowLen)
			copy(window, trace[start:start+windowLen])
			windows = append(windows, window)
			labels = append(labels, ref.Offset-float64(start))
		}
	}

	return windows, labels, nil
}
