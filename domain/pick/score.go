package pick

import (
	"math"

	"pickbench/domain/core"
)

// Scoring constants. The category credits and the zero-denominator fallback
// are tuned values carried over from the Maurizio 2012 scoring scheme; they
// are hyperparameters, not derived quantities, and changing them changes
// what the calibration considers a good picker.
const (
	// DefaultUncertainty is the timing tolerance in samples; it is divided
	// by the sampling rate to obtain the Gaussian kernel width in seconds.
	DefaultUncertainty = 30.0

	// falseTriggerCredit is the partial credit for a predicted-only row:
	// a false trigger is bad, but better than silence.
	falseTriggerCredit = (1.0 / 5.0) * (1.0 / 5.0)

	// mutualSilenceCredit rewards rows where both picker and analyst
	// agree no arrival is present.
	mutualSilenceCredit = 1.0 / 4.0

	// ZeroDenominatorLoss is returned when the category-weighted
	// denominator is exactly zero, keeping the objective evaluable
	// instead of dividing by zero.
	ZeroDenominatorLoss = 100.0
)

// Loss scores a batch of predicted picks against reference picks. Lower is
// better. Rows are partitioned into the four outcome categories; each
// both-picked row contributes a Gaussian similarity exp(-dt^2/(2*sigma^2))
// with dt the signed time difference in seconds and sigma = uncert/sr,
// missed rows contribute nothing, false triggers and mutual silences
// contribute their fixed credits. The loss is the inverse of the
// category-normalized fitness.
//
// An all-missed batch has zero fitness and the loss is +Inf; only a zero
// denominator is remapped to ZeroDenominatorLoss.
func Loss(pred, ref []Pick, samplingRate, uncert float64) (float64, error) {
	if samplingRate <= 0 {
		return 0, core.NewConfigError("sampling_rate", "must be positive")
	}
	if uncert <= 0 {
		return 0, core.NewConfigError("uncertainty", "must be positive")
	}
	part, err := NewPartition(pred, ref)
	if err != nil {
		return 0, err
	}

	sigma := uncert / samplingRate
	var bothScore float64
	for _, i := range part.Both {
		dt := (pred[i].Offset - ref[i].Offset) / samplingRate
		bothScore += math.Exp(-(dt * dt) / (2 * sigma * sigma))
	}

	numerator := bothScore +
		falseTriggerCredit*float64(len(part.PredictedOnly)) +
		mutualSilenceCredit*float64(len(part.Neither))

	denominator := 0.25*float64(len(part.PredictedOnly)+len(part.Neither)) +
		float64(len(part.Both)+len(part.ReferenceOnly))
	if denominator == 0 {
		return ZeroDenominatorLoss, nil
	}

	fitness := numerator / denominator
	return 1 / fitness, nil
}
