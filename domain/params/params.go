// Package params defines the bounded control-parameter vector of the
// classical arrival-time detector and its search bounds.
package params

import (
	"fmt"

	"pickbench/domain/core"
)

// Dim is the number of detector control parameters.
const Dim = 7

// Vector is one immutable snapshot of detector control parameters. The six
// detector parameters drive the characteristic-function trigger; the offset
// constant is a fixed correction added to every returned pick.
type Vector struct {
	Tdownmax       float64 `json:"tdownmax"`
	Tupevent       float64 `json:"tupevent"`
	Thr1           float64 `json:"thr1"`
	Thr2           float64 `json:"thr2"`
	PresetLen      float64 `json:"preset_len"`
	PDur           float64 `json:"p_dur"`
	OffsetConstant float64 `json:"offset_constant"`
}

// Slice returns the vector in canonical parameter order.
func (v Vector) Slice() []float64 {
	return []float64{
		v.Tdownmax, v.Tupevent, v.Thr1, v.Thr2,
		v.PresetLen, v.PDur, v.OffsetConstant,
	}
}

// FromSlice builds a vector from canonical parameter order.
func FromSlice(s []float64) (Vector, error) {
	if len(s) != Dim {
		return Vector{}, core.NewShapeError("parameter vector",
			fmt.Sprintf("expected %d values, got %d", Dim, len(s)))
	}
	return Vector{
		Tdownmax:       s[0],
		Tupevent:       s[1],
		Thr1:           s[2],
		Thr2:           s[3],
		PresetLen:      s[4],
		PDur:           s[5],
		OffsetConstant: s[6],
	}, nil
}

func (v Vector) String() string {
	return fmt.Sprintf(
		"tdownmax=%.3f tupevent=%.3f thr1=%.3f thr2=%.3f preset_len=%.3f p_dur=%.3f offset_constant=%.3f",
		v.Tdownmax, v.Tupevent, v.Thr1, v.Thr2, v.PresetLen, v.PDur, v.OffsetConstant)
}

// Bounds are independent per-parameter search limits, in canonical order.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// DefaultBounds returns the calibration search space for the detector.
func DefaultBounds() Bounds {
	return Bounds{
		Lower: []float64{0, 0, 0, 5, 0, 0, -10},
		Upper: []float64{50, 10, 15, 20, 200, 200, 10},
	}
}

// Names returns parameter names in canonical order.
func Names() []string {
	return []string{
		"tdownmax", "tupevent", "thr1", "thr2",
		"preset_len", "p_dur", "offset_constant",
	}
}

// Validate checks bound shape and ordering.
func (b Bounds) Validate() error {
	if len(b.Lower) != Dim || len(b.Upper) != Dim {
		return core.NewConfigError("bounds",
			fmt.Sprintf("expected %d lower and upper limits", Dim))
	}
	for i := range b.Lower {
		if b.Lower[i] >= b.Upper[i] {
			return core.NewConfigError("bounds",
				fmt.Sprintf("%s: lower limit must be below upper", Names()[i]))
		}
	}
	return nil
}

// Contains reports whether the vector lies within the bounds.
func (b Bounds) Contains(v Vector) bool {
	s := v.Slice()
	for i := range s {
		if s[i] < b.Lower[i] || s[i] > b.Upper[i] {
			return false
		}
	}
	return true
}

// Clamp projects each component of a raw candidate onto the bounds.
func (b Bounds) Clamp(s []float64) {
	for i := range s {
		if s[i] < b.Lower[i] {
			s[i] = b.Lower[i]
		} else if s[i] > b.Upper[i] {
			s[i] = b.Upper[i]
		}
	}
}

// Hash fingerprints the bounds for run manifests.
func (b Bounds) Hash() core.BoundsHash {
	return core.NewBoundsHash(b.Lower, b.Upper)
}
