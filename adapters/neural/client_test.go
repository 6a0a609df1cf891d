package neural

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickbench/domain/core"
)

func arrivalWindows(n, length, onset int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		w := make([]float64, length)
		for j := range w {
			w[j] = 0.01 * math.Sin(0.9*float64(j)+float64(i))
			if j >= onset {
				w[j] += math.Sin(0.3 * float64(j-onset))
			}
		}
		out[i] = w
	}
	return out
}

func TestValidateModelPaths(t *testing.T) {
	assert.NoError(t, ValidateModelPaths("models/structure.json", "models/weights.hdf5"))
	assert.NoError(t, ValidateModelPaths("models/structure.json", ""))

	err := ValidateModelPaths("models/structure.yaml", "models/weights.hdf5")
	assert.True(t, core.IsConfigError(err), "got %v, want config error", err)

	err = ValidateModelPaths("models/structure.json", "models/weights.h5")
	assert.True(t, core.IsConfigError(err), "got %v, want config error", err)
}

func TestNewClient_RejectsBadGranularity(t *testing.T) {
	_, err := NewClient(NewHeuristicEngine(), 0)
	assert.True(t, core.IsConfigError(err), "got %v, want config error", err)
}

func TestClient_PredictRestoresRowCountAndOrder(t *testing.T) {
	client, err := NewClient(NewHeuristicEngine(), 3)
	require.NoError(t, err)

	// Five rows: not a multiple of three, so the conformer must pad to six
	// and strip back down.
	windows := arrivalWindows(5, 400, 200)
	picks, err := client.Predict(context.Background(), windows)
	require.NoError(t, err)
	require.Len(t, picks, 5)

	for i, p := range picks {
		require.True(t, p.Valid, "row %d produced no pick", i)
		assert.InDeltaf(t, 200, p.Offset, 30, "row %d picked far from the arrival", i)
	}
}

func TestClient_TrainingBatchTruncates(t *testing.T) {
	client, err := NewClient(NewHeuristicEngine(), 3)
	require.NoError(t, err)

	windows := arrivalWindows(7, 400, 200)
	labels := []float64{0, 1, 2, 3, 4, 5, 6}

	w, y, err := client.TrainingBatch(windows, labels)
	require.NoError(t, err)
	assert.Len(t, w, 6)
	assert.Len(t, y, 6)
	assert.Equal(t, 5.0, y[5])
}

func TestHeuristicEngine_NaNWindowsPredictNaN(t *testing.T) {
	engine := NewHeuristicEngine()
	nanRow := make([]float64, 400)
	for i := range nanRow {
		nanRow[i] = math.NaN()
	}
	windows := [][]float64{arrivalWindows(1, 400, 200)[0], nanRow}

	preds, err := engine.Predict(context.Background(), windows)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.False(t, math.IsNaN(preds[0]))
	assert.True(t, math.IsNaN(preds[1]), "sentinel row must predict NaN")
}

func TestHeuristicEngine_ShortWindow(t *testing.T) {
	engine := NewHeuristicEngine()
	preds, err := engine.Predict(context.Background(), [][]float64{make([]float64, 20)})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(preds[0]))
}
