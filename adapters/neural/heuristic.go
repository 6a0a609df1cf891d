package neural

import (
	"context"
	"math"

	"pickbench/ports"
)

// HeuristicEngine is an in-process stand-in for the external neural
// engine, used by tests and dry runs. It estimates the arrival as the
// sample maximizing a short-term over long-term energy ratio. Filler rows
// (NaN windows) predict NaN, matching the real engine's sentinel behavior.
type HeuristicEngine struct {
	shortWin int
	longWin  int
}

var _ ports.InferenceEngine = (*HeuristicEngine)(nil)

// NewHeuristicEngine creates an engine with conventional STA/LTA spans.
func NewHeuristicEngine() *HeuristicEngine {
	return &HeuristicEngine{shortWin: 10, longWin: 100}
}

// Predict returns one pick offset per window.
func (e *HeuristicEngine) Predict(_ context.Context, windows [][]float64) ([]float64, error) {
	out := make([]float64, len(windows))
	for i, w := range windows {
		out[i] = e.pickOne(w)
	}
	return out, nil
}

func (e *HeuristicEngine) pickOne(w []float64) float64 {
	if len(w) < e.longWin+e.shortWin {
		return math.NaN()
	}

	energy := make([]float64, len(w))
	for i, v := range w {
		energy[i] = v * v
	}

	bestRatio := 0.0
	best := math.NaN()
	for i := e.longWin; i <= len(w)-e.shortWin; i++ {
		var sta, lta float64
		for j := i; j < i+e.shortWin; j++ {
			sta += energy[j]
		}
		for j := i - e.longWin; j < i; j++ {
			lta += energy[j]
		}
		sta /= float64(e.shortWin)
		lta /= float64(e.longWin)
		if lta == 0 {
			continue
		}
		if ratio := sta / lta; ratio > bestRatio {
			bestRatio = ratio
			best = float64(i)
		}
	}
	// NaN windows never exceed the ratio comparisons and fall through here.
	return best
}
