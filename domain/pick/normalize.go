package pick

import "math"

// NormalizeWindow rescales a single window to zero mean and unit peak
// amplitude. The input is not mutated. Windows containing NaN samples
// propagate NaN instead of failing (the filler contract of the batch
// conformer); an all-zero window is returned demeaned but unscaled.
func NormalizeWindow(window []float64) []float64 {
	n := len(window)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	var sum float64
	for _, v := range window {
		sum += v
	}
	mean := sum / float64(n)

	var peak float64
	for i, v := range window {
		out[i] = v - mean
		if abs := math.Abs(out[i]); abs > peak {
			peak = abs
		}
	}
	// NaN inputs leave peak untouched by the > comparison; division below
	// still propagates NaN per element as required.
	if peak == 0 {
		return out
	}
	for i := range out {
		out[i] /= peak
	}
	return out
}

// Normalize rescales each window of a batch independently. Pure function;
// the result shares no storage with the input.
func Normalize(windows [][]float64) [][]float64 {
	out := make([][]float64, len(windows))
	for i, w := range windows {
		out[i] = NormalizeWindow(w)
	}
	return out
}
