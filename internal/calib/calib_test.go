package calib

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"pickbench/adapters/baer"
	"pickbench/domain/core"
	"pickbench/domain/params"
)

// convergenceThreshold documents the loss a calibration must reach on the
// trivially separable synthetic set below: a perfect detector scores 1, and
// anything under 2 means the search found near-exact picks for most rows.
const convergenceThreshold = 2.0

// separableTrainingSet builds windows whose arrivals a correctly
// parameterized detector picks exactly: quiet deterministic noise with a
// strong oscillatory onset at the label.
func separableTrainingSet(n int) ([][]float64, []float64) {
	windows := make([][]float64, n)
	labels := make([]float64, n)
	for i := 0; i < n; i++ {
		onset := 280 + 5*i
		w := make([]float64, 600)
		for j := range w {
			w[j] = 0.001*math.Sin(0.7*float64(j)+float64(i)) + 0.0005*math.Sin(1.3*float64(j))
			if j >= onset {
				w[j] += math.Sin(0.25 * float64(j-onset))
			}
		}
		windows[i] = w
		labels[i] = float64(onset)
	}
	return windows, labels
}

func TestCalibrate_ConvergesOnSeparableData(t *testing.T) {
	windows, labels := separableTrainingSet(8)
	opts := Options{
		PopSize:        30,
		MaxGenerations: 50,
	}

	result, err := Calibrate(context.Background(), baer.New(), windows, labels,
		100, params.DefaultBounds(), opts, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}
	if result.Loss >= convergenceThreshold {
		t.Errorf("loss = %v, want below %v", result.Loss, convergenceThreshold)
	}
	if !params.DefaultBounds().Contains(result.Best) {
		t.Errorf("best vector %s escaped the bounds", result.Best)
	}
	if result.Evaluations == 0 || result.Generations == 0 {
		t.Errorf("suspicious search effort: %d evaluations, %d generations",
			result.Evaluations, result.Generations)
	}
}

func TestCalibrate_SeededRunsAreReproducible(t *testing.T) {
	windows, labels := separableTrainingSet(6)
	opts := Options{
		PopSize:        16,
		MaxGenerations: 10,
		Workers:        4, // parallel evaluation must not perturb the search
	}

	r1, err := Calibrate(context.Background(), baer.New(), windows, labels,
		100, params.DefaultBounds(), opts, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}
	r2, err := Calibrate(context.Background(), baer.New(), windows, labels,
		100, params.DefaultBounds(), opts, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}

	if r1.Best != r2.Best {
		t.Errorf("same seed found different vectors:\n%s\n%s", r1.Best, r2.Best)
	}
	if r1.Loss != r2.Loss {
		t.Errorf("same seed found different losses: %v vs %v", r1.Loss, r2.Loss)
	}
}

func TestCalibrate_ObjectiveUnusableForEveryCandidate(t *testing.T) {
	windows, labels := separableTrainingSet(4)
	opts := Options{PopSize: 8, MaxGenerations: 5}

	// Non-positive sampling rate makes the score error for every candidate.
	_, err := Calibrate(context.Background(), baer.New(), windows, labels,
		-1, params.DefaultBounds(), opts, rand.New(rand.NewSource(1)))
	if !core.IsOptimizationError(err) {
		t.Errorf("got %v, want optimization error", err)
	}
}

func TestCalibrate_InputValidation(t *testing.T) {
	windows, labels := separableTrainingSet(4)
	rng := rand.New(rand.NewSource(1))

	if _, err := Calibrate(context.Background(), baer.New(), windows, labels[:2],
		100, params.DefaultBounds(), Options{}, rng); !core.IsShapeError(err) {
		t.Errorf("mismatched labels: got %v, want shape error", err)
	}
	if _, err := Calibrate(context.Background(), baer.New(), nil, nil,
		100, params.DefaultBounds(), Options{}, rng); !core.IsShapeError(err) {
		t.Errorf("empty training set: got %v, want shape error", err)
	}

	bad := params.DefaultBounds()
	bad.Lower[0] = bad.Upper[0] + 1
	if _, err := Calibrate(context.Background(), baer.New(), windows, labels,
		100, bad, Options{}, rng); !core.IsConfigError(err) {
		t.Errorf("inverted bounds: got %v, want config error", err)
	}
}

func TestCalibrate_DoesNotMutateTrainingData(t *testing.T) {
	windows, labels := separableTrainingSet(4)
	wCopy := make([][]float64, len(windows))
	for i, w := range windows {
		wCopy[i] = append([]float64(nil), w...)
	}
	yCopy := append([]float64(nil), labels...)

	_, err := Calibrate(context.Background(), baer.New(), windows, labels,
		100, params.DefaultBounds(), Options{PopSize: 8, MaxGenerations: 3},
		rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}

	for i := range windows {
		for j := range windows[i] {
			if windows[i][j] != wCopy[i][j] {
				t.Fatalf("training window mutated at [%d][%d]", i, j)
			}
		}
	}
	for i := range labels {
		if labels[i] != yCopy[i] {
			t.Fatalf("training label mutated at %d", i)
		}
	}
}
