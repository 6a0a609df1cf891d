package pick

import (
	"math/rand"
	"testing"
)

func testDataset(n int) Dataset {
	ds := Dataset{SamplingRate: 100, Label: "A"}
	for i := 0; i < n; i++ {
		trace := make([]float64, 16)
		trace[0] = float64(i)
		ds.Traces = append(ds.Traces, trace)
		ds.Picks = append(ds.Picks, Some(float64(8)))
	}
	return ds
}

func TestSplit_FractionAndDeterminism(t *testing.T) {
	ds := testDataset(20)

	train1, test1, err := ds.Split(0.75, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if train1.Len() != 15 || test1.Len() != 5 {
		t.Fatalf("split sizes = %d/%d, want 15/5", train1.Len(), test1.Len())
	}

	train2, _, err := ds.Split(0.75, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	for i := range train1.Traces {
		if train1.Traces[i][0] != train2.Traces[i][0] {
			t.Fatal("same seed produced different splits")
		}
	}
}

func TestSplit_InvalidFraction(t *testing.T) {
	ds := testDataset(4)
	for _, frac := range []float64{0, 1, -0.5, 1.5} {
		if _, _, err := ds.Split(frac, rand.New(rand.NewSource(1))); err == nil {
			t.Errorf("expected config error for fraction %v", frac)
		}
	}
}

func TestDataset_Validate(t *testing.T) {
	ds := testDataset(3)
	ds.Picks = ds.Picks[:2]
	if err := ds.Validate(); err == nil {
		t.Error("expected shape error for mismatched trace/pick counts")
	}

	ds = testDataset(3)
	ds.SamplingRate = 0
	if err := ds.Validate(); err == nil {
		t.Error("expected config error for zero sampling rate")
	}
}

func TestDataset_HashTracksContent(t *testing.T) {
	a := testDataset(3)
	b := testDataset(3)
	if a.Hash() != b.Hash() {
		t.Error("identical datasets hashed differently")
	}
	b.Traces[1][3] = 99
	if a.Hash() == b.Hash() {
		t.Error("differing datasets hashed identically")
	}
}
