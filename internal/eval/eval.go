// Package eval summarizes pick residuals so calibrated pickers can be
// compared numerically across the same test set.
package eval

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"pickbench/domain/core"
	"pickbench/domain/pick"
)

// Summary aggregates the residuals of one predictor over a test set.
// Residuals are signed predicted-minus-reference differences in seconds,
// computed over both-picked rows only; the category counts put them in
// context.
type Summary struct {
	Name      string
	Rows      int
	Both      int
	RefOnly   int
	PredOnly  int
	Neither   int
	Mean      float64
	Median    float64
	Std       float64
	P10       float64
	P90       float64
	HitRate   float64 // fraction of both-picked rows within tolerance
	Tolerance float64 // hit tolerance in seconds
}

// Residuals returns the signed residuals in seconds for both-picked rows.
func Residuals(pred, ref []pick.Pick, samplingRate float64) ([]float64, error) {
	if len(pred) != len(ref) {
		return nil, core.NewShapeError("residuals", "predicted and reference pick counts differ")
	}
	if samplingRate <= 0 {
		return nil, core.NewConfigError("sampling_rate", "must be positive")
	}
	out := make([]float64, 0, len(pred))
	for i := range pred {
		if pred[i].Valid && ref[i].Valid {
			out = append(out, (pred[i].Offset-ref[i].Offset)/samplingRate)
		}
	}
	return out, nil
}

// Summarize computes a residual summary for one predictor. tolerance is the
// hit threshold in seconds; the default scoring tolerance works well:
// pick.DefaultUncertainty / samplingRate.
func Summarize(name string, pred, ref []pick.Pick, samplingRate, tolerance float64) (Summary, error) {
	part, err := pick.NewPartition(pred, ref)
	if err != nil {
		return Summary{}, err
	}
	res, err := Residuals(pred, ref, samplingRate)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Name:      name,
		Rows:      len(pred),
		Both:      len(part.Both),
		RefOnly:   len(part.ReferenceOnly),
		PredOnly:  len(part.PredictedOnly),
		Neither:   len(part.Neither),
		Tolerance: tolerance,
	}
	if len(res) == 0 {
		return s, nil
	}

	s.Mean = stat.Mean(res, nil)
	if len(res) > 1 {
		s.Std = stat.StdDev(res, nil)
	}
	if s.Median, err = mstats.Median(res); err != nil {
		return Summary{}, err
	}
	if s.P10, err = mstats.Percentile(res, 10); err != nil {
		return Summary{}, err
	}
	if s.P90, err = mstats.Percentile(res, 90); err != nil {
		return Summary{}, err
	}

	hits := 0
	for _, r := range res {
		if math.Abs(r) <= tolerance {
			hits++
		}
	}
	s.HitRate = float64(hits) / float64(len(res))
	return s, nil
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"%s: rows=%d both=%d ref_only=%d pred_only=%d neither=%d mean=%.4fs median=%.4fs std=%.4fs p10=%.4fs p90=%.4fs hit_rate=%.1f%% (tol %.3fs)",
		s.Name, s.Rows, s.Both, s.RefOnly, s.PredOnly, s.Neither,
		s.Mean, s.Median, s.Std, s.P10, s.P90, 100*s.HitRate, s.Tolerance)
}
