// Package pick defines the core domain model for P-phase arrival picks:
// the optional pick value, labeled waveform datasets, the four-way outcome
// partition of predicted/reference pick pairs, and the asymmetric score used
// to calibrate and benchmark pickers.
package pick

import (
	"math"

	"pickbench/domain/core"
)

// Pick is an arrival-time estimate expressed as a signed sample offset from
// the start of a window. A Pick is either known (Valid) or absent; absence
// means the detector or analyst declared no arrival, which is a legitimate
// outcome, not an error.
type Pick struct {
	Offset float64
	Valid  bool
}

// Some creates a known pick at the given sample offset.
func Some(offset float64) Pick {
	return Pick{Offset: offset, Valid: true}
}

// None creates an absent pick.
func None() Pick {
	return Pick{}
}

// IsNone reports whether the pick is absent.
func (p Pick) IsNone() bool {
	return !p.Valid
}

// Seconds converts the pick offset to seconds at the given sampling rate.
// The second return value is false for an absent pick.
func (p Pick) Seconds(samplingRate float64) (float64, bool) {
	if !p.Valid || samplingRate <= 0 {
		return 0, false
	}
	return p.Offset / samplingRate, true
}

// Float returns the offset, or NaN for an absent pick. Only array boundaries
// toward external engines should need this; domain code branches on Valid.
func (p Pick) Float() float64 {
	if !p.Valid {
		return math.NaN()
	}
	return p.Offset
}

// FromFloat converts a possibly-NaN offset back into a Pick.
func FromFloat(v float64) Pick {
	if math.IsNaN(v) {
		return None()
	}
	return Some(v)
}

// FromFloats converts a slice of possibly-NaN offsets into picks.
func FromFloats(vs []float64) []Pick {
	out := make([]Pick, len(vs))
	for i, v := range vs {
		out[i] = FromFloat(v)
	}
	return out
}

// Floats converts picks into a slice of offsets with NaN for absent picks.
func Floats(ps []Pick) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Float()
	}
	return out
}

// Category classifies one predicted/reference pick pair. The four categories
// are mutually exclusive and exhaustive: every pair belongs to exactly one.
type Category int

const (
	// Both picked
	CategoryBoth Category = iota
	// Reference (analyst) picked, prediction absent
	CategoryReferenceOnly
	// Prediction picked, reference absent (false trigger)
	CategoryPredictedOnly
	// Neither picked (agreement on absence)
	CategoryNeither
)

func (c Category) String() string {
	switch c {
	case CategoryBoth:
		return "both"
	case CategoryReferenceOnly:
		return "reference_only"
	case CategoryPredictedOnly:
		return "predicted_only"
	case CategoryNeither:
		return "neither"
	}
	return "unknown"
}

// Categorize assigns the outcome category for a predicted/reference pair.
func Categorize(pred, ref Pick) Category {
	switch {
	case pred.Valid && ref.Valid:
		return CategoryBoth
	case !pred.Valid && ref.Valid:
		return CategoryReferenceOnly
	case pred.Valid && !ref.Valid:
		return CategoryPredictedOnly
	default:
		return CategoryNeither
	}
}

// Partition holds the row indices of a batch grouped by outcome category.
type Partition struct {
	Both          []int
	ReferenceOnly []int
	PredictedOnly []int
	Neither       []int
}

// NewPartition partitions paired prediction/reference vectors by category.
// Category membership depends on predicted-pick nullity, so it must be
// recomputed for every candidate parameter vector.
func NewPartition(pred, ref []Pick) (Partition, error) {
	if len(pred) != len(ref) {
		return Partition{}, core.NewShapeError("partition",
			"predicted and reference pick counts differ")
	}
	var part Partition
	for i := range pred {
		switch Categorize(pred[i], ref[i]) {
		case CategoryBoth:
			part.Both = append(part.Both, i)
		case CategoryReferenceOnly:
			part.ReferenceOnly = append(part.ReferenceOnly, i)
		case CategoryPredictedOnly:
			part.PredictedOnly = append(part.PredictedOnly, i)
		case CategoryNeither:
			part.Neither = append(part.Neither, i)
		}
	}
	return part, nil
}
