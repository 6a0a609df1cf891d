// Package baer implements a Baer-Kradolfer style P-phase arrival detector:
// a squared characteristic function over the signal and its derivative,
// thresholded against running noise statistics, with up/down counters
// validating candidate triggers. It is the classical parametric picker the
// calibration engine tunes.
package baer

import (
	"math"

	"pickbench/domain/params"
	"pickbench/domain/pick"
	"pickbench/ports"
)

// Detector is a pure, stateless picker; a zero value is ready to use.
type Detector struct{}

var _ ports.Picker = (*Detector)(nil)

// New creates a detector.
func New() *Detector {
	return &Detector{}
}

// minPreset is the smallest usable noise-initialization window.
const minPreset = 2

// Pick applies the detector to one window under an immutable parameter
// snapshot. The window is normalized internally; the input is not mutated.
// No trigger, or a window too short for the preset length, yields an
// absent pick.
func (d *Detector) Pick(window []float64, p params.Vector) pick.Pick {
	x := pick.NormalizeWindow(window)
	onset, ok := detect(x, p)
	if !ok {
		return pick.None()
	}
	return pick.Some(float64(onset) + p.OffsetConstant)
}

// PickBatch applies the same parameter vector to every window
// independently. Rows without a trigger degrade to absent picks; the rest
// of the batch proceeds.
func (d *Detector) PickBatch(windows [][]float64, p params.Vector) []pick.Pick {
	out := make([]pick.Pick, len(windows))
	for i, w := range windows {
		out[i] = d.Pick(w, p)
	}
	return out
}

// detect runs the characteristic-function state machine over a normalized
// window and returns the confirmed onset sample.
//
// Parameter semantics, all counts in samples:
//
//	preset_len  noise statistics initialization span; no triggering inside
//	thr1        onset threshold in noise standard deviations
//	thr2        validation threshold the CF must hold after onset
//	tupevent    samples the CF must stay above thr2 to confirm an event
//	tdownmax    consecutive samples the CF may dip below thr2 before an
//	            unconfirmed trigger is abandoned
//	p_dur       span after onset within which confirmation must happen
func detect(x []float64, p params.Vector) (int, bool) {
	n := len(x)
	preset := int(p.PresetLen)
	if preset < minPreset {
		preset = minPreset
	}
	if n <= preset+1 {
		return 0, false
	}

	cf := charFunc(x)

	// Welford running noise statistics over non-triggered samples.
	var mean, m2 float64
	var count float64
	update := func(v float64) {
		count++
		delta := v - mean
		mean += delta / count
		m2 += delta * (v - mean)
	}
	std := func() float64 {
		if count < 2 {
			return 0
		}
		return math.Sqrt(m2 / (count - 1))
	}

	for i := 0; i < preset; i++ {
		update(cf[i])
	}

	tup := int(p.Tupevent)
	tdown := int(p.Tdownmax)
	pdur := int(p.PDur)

	triggered := false
	onset := 0
	up := 0
	down := 0

	for i := preset; i < n; i++ {
		if !triggered {
			if cf[i] > mean+p.Thr1*std() {
				triggered = true
				onset = i
				up = 0
				down = 0
				continue
			}
			update(cf[i])
			continue
		}

		if cf[i] > mean+p.Thr2*std() {
			up++
			down = 0
		} else {
			down++
		}

		if up >= tup {
			return onset, true
		}
		if down > tdown || i-onset > pdur {
			// Candidate never validated; resume the search with the
			// noise statistics frozen at their pre-trigger state.
			triggered = false
		}
	}

	if triggered && up >= tup {
		return onset, true
	}
	return 0, false
}

// charFunc computes the squared energy characteristic function
// e(i) = (x^2 + w * dx^2)^2 with the derivative weighted by the ratio of
// signal to derivative power, so both amplitude and frequency changes
// raise the function.
func charFunc(x []float64) []float64 {
	n := len(x)
	cf := make([]float64, n)
	if n < 2 {
		return cf
	}

	var powX, powDx float64
	dx := make([]float64, n)
	for i := 1; i < n; i++ {
		dx[i] = x[i] - x[i-1]
		powX += x[i] * x[i]
		powDx += dx[i] * dx[i]
	}
	w := 1.0
	if powDx > 0 {
		w = powX / powDx
	}

	for i := range cf {
		e := x[i]*x[i] + w*dx[i]*dx[i]
		cf[i] = e * e
	}
	return cf
}
