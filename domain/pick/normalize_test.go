package pick

import (
	"math"
	"testing"
)

func TestNormalizeWindow_ZeroMeanUnitPeak(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	out := NormalizeWindow(in)

	var sum, peak float64
	for _, v := range out {
		sum += v
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if math.Abs(sum) > 1e-12 {
		t.Errorf("mean not removed: sum = %v", sum)
	}
	if math.Abs(peak-1) > 1e-12 {
		t.Errorf("peak = %v, want 1", peak)
	}
	// input untouched
	if in[0] != 1 || in[4] != 5 {
		t.Error("input window was mutated")
	}
}

func TestNormalizeWindow_NaNPropagates(t *testing.T) {
	out := NormalizeWindow([]float64{math.NaN(), math.NaN(), math.NaN()})
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Errorf("sample %d = %v, want NaN", i, v)
		}
	}
}

func TestNormalizeWindow_AllZero(t *testing.T) {
	out := NormalizeWindow([]float64{0, 0, 0})
	for i, v := range out {
		if v != 0 {
			t.Errorf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	windows := [][]float64{{1, -2, 3}, {0.5, 0.25, -0.75}}
	a := Normalize(windows)
	b := Normalize(windows)
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("normalization not deterministic at [%d][%d]", i, j)
			}
		}
	}
}
