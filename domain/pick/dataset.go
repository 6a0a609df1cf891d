package pick

import (
	"math/rand"

	"pickbench/domain/core"
)

// Dataset is an ordered, read-only collection of labeled waveform traces.
// Traces[i] holds the raw samples of row i and Picks[i] the analyst reference
// pick for that row as a sample offset into the trace.
type Dataset struct {
	Traces       [][]float64
	Picks        []Pick
	SamplingRate float64
	Label        string
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.Traces)
}

// Validate checks internal consistency of the dataset shape.
func (d Dataset) Validate() error {
	if len(d.Traces) != len(d.Picks) {
		return core.NewShapeError("dataset", "trace and pick counts differ")
	}
	if d.SamplingRate <= 0 {
		return core.NewConfigError("sampling_rate", "must be positive")
	}
	return nil
}

// Hash fingerprints the dataset contents for run manifests.
func (d Dataset) Hash() core.DatasetHash {
	rows := make([][]float64, 0, len(d.Traces)+1)
	rows = append(rows, d.Traces...)
	rows = append(rows, Floats(d.Picks))
	return core.NewDatasetHash(rows...)
}

// Split partitions the dataset into train and test subsets by row, keeping
// trainFraction of rows (rounded down) for training. Row assignment is a
// seeded shuffle of indices; relative order within each subset follows the
// shuffled order, matching a reproducible fractional split. Traces are shared
// slices, not copied; both subsets remain read-only views.
func (d Dataset) Split(trainFraction float64, rng *rand.Rand) (train, test Dataset, err error) {
	if trainFraction <= 0 || trainFraction >= 1 {
		return Dataset{}, Dataset{}, core.NewConfigError("train_fraction",
			"must be strictly between 0 and 1")
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, Dataset{}, err
	}

	n := d.Len()
	idx := rng.Perm(n)
	nTrain := int(float64(n) * trainFraction)

	pickRows := func(rows []int) Dataset {
		out := Dataset{
			Traces:       make([][]float64, 0, len(rows)),
			Picks:        make([]Pick, 0, len(rows)),
			SamplingRate: d.SamplingRate,
			Label:        d.Label,
		}
		for _, i := range rows {
			out.Traces = append(out.Traces, d.Traces[i])
			out.Picks = append(out.Picks, d.Picks[i])
		}
		return out
	}

	return pickRows(idx[:nTrain]), pickRows(idx[nTrain:]), nil
}
