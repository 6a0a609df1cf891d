package core

import (
	"errors"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		check    func(error) bool
	}{
		{NewConfigError("granularity", "must be positive"), ErrConfig, IsConfigError},
		{NewShapeError("windows", "length mismatch"), ErrShape, IsShapeError},
		{NewRowShapeError(3, "pick outside trace"), ErrShape, IsShapeError},
		{NewNotFoundError("/tmp/x.json"), ErrNotFound, IsNotFoundError},
		{NewParseError("/tmp/x.json", errors.New("bad json")), ErrParse, IsParseError},
		{NewOptimizationError(2, errors.New("boom")), ErrOptimization, IsOptimizationError},
	}

	for _, tc := range cases {
		if !errors.Is(tc.err, tc.sentinel) {
			t.Errorf("%v does not wrap %v", tc.err, tc.sentinel)
		}
		if !tc.check(tc.err) {
			t.Errorf("helper rejected %v", tc.err)
		}
	}

	if IsConfigError(NewShapeError("x", "y")) {
		t.Error("shape error misclassified as config error")
	}
}

func TestNewID_Unique(t *testing.T) {
	a, b := NewID(), NewID()
	if a.IsEmpty() || b.IsEmpty() {
		t.Fatal("ids should not be empty")
	}
	if a == b {
		t.Error("consecutive ids collided")
	}
}

func TestComputeFloatsHash(t *testing.T) {
	a := ComputeFloatsHash([]float64{1, 2}, []float64{3})
	b := ComputeFloatsHash([]float64{1, 2}, []float64{3})
	if a != b {
		t.Error("identical inputs hashed differently")
	}

	// Slice boundaries matter: {1,2},{3} and {1},{2,3} must differ.
	c := ComputeFloatsHash([]float64{1}, []float64{2, 3})
	if a == c {
		t.Error("different slice boundaries hashed identically")
	}

	d := ComputeFloatsHash([]float64{1, 2}, []float64{4})
	if a == d {
		t.Error("different values hashed identically")
	}
}
