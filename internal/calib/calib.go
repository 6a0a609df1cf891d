// Package calib tunes the parametric picker's control parameters against
// the pick score with bounded differential evolution. The objective is
// non-convex and discontinuous across outcome-category boundaries, so the
// search is derivative-free and global; the result is best-effort within
// the generation budget, reproducible only under a fixed seed.
package calib

import (
	"context"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"pickbench/domain/core"
	"pickbench/domain/params"
	"pickbench/domain/pick"
	"pickbench/internal"
	"pickbench/ports"
)

// Search defaults follow the scipy differential_evolution settings the
// original calibration ran with: rand/1/bin, population 15 per dimension,
// mutation dithered per generation in [0.5, 1), crossover 0.7.
const (
	defaultPopFactor      = 15
	defaultMaxGenerations = 1000
	defaultTolerance      = 0.01
	crossoverProb         = 0.7
)

// Options are the optional search-control knobs.
type Options struct {
	PopSize        int     // 0 uses 15 per dimension
	MaxGenerations int     // 0 uses 1000
	Tolerance      float64 // relative stddev convergence limit; 0 uses 0.01
	Uncertainty    float64 // scoring tolerance in samples; 0 uses the default
	Workers        int     // parallel objective evaluations; 0 uses GOMAXPROCS
}

// Result is the outcome of a calibration search.
type Result struct {
	Best        params.Vector
	Loss        float64
	Generations int
	Evaluations int
	Converged   bool
}

// Calibrate searches the bounds for the parameter vector minimizing the
// pick score of picker over the training windows and labels. Inputs are
// never mutated; every candidate sees the same immutable training data.
// All randomness comes from rng, drawn on a single goroutine before each
// parallel evaluation fan-out, so a seeded run is fully deterministic.
//
// Exhausting the generation budget is not an error: the best vector found
// is returned. Calibrate fails only when the search cannot start or when
// the objective errors for every candidate of an evaluation.
func Calibrate(ctx context.Context, picker ports.Picker, windows [][]float64, labels []float64,
	samplingRate float64, bounds params.Bounds, opts Options, rng *rand.Rand) (Result, error) {

	if err := bounds.Validate(); err != nil {
		return Result{}, err
	}
	if len(windows) != len(labels) {
		return Result{}, core.NewShapeError("calibrate", "window and label counts differ")
	}
	if len(windows) == 0 {
		return Result{}, core.NewShapeError("calibrate", "empty training set")
	}

	popSize := opts.PopSize
	if popSize == 0 {
		popSize = defaultPopFactor * params.Dim
	}
	if popSize < 4 {
		return Result{}, core.NewConfigError("pop_size", "differential evolution needs at least 4 candidates")
	}
	maxGen := opts.MaxGenerations
	if maxGen == 0 {
		maxGen = defaultMaxGenerations
	}
	tol := opts.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}
	uncert := opts.Uncertainty
	if uncert == 0 {
		uncert = pick.DefaultUncertainty
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	refs := pick.FromFloats(labels)
	objective := func(cand []float64) (float64, error) {
		v, err := params.FromSlice(cand)
		if err != nil {
			return 0, err
		}
		pred := picker.PickBatch(windows, v)
		return pick.Loss(pred, refs, samplingRate, uncert)
	}

	log := internal.DefaultLogger
	res := Result{Loss: math.Inf(1)}

	// Initial population: uniform within bounds.
	pop := make([][]float64, popSize)
	for i := range pop {
		cand := make([]float64, params.Dim)
		for j := range cand {
			cand[j] = bounds.Lower[j] + rng.Float64()*(bounds.Upper[j]-bounds.Lower[j])
		}
		pop[i] = cand
	}

	losses, err := evaluate(ctx, objective, pop, workers, 0)
	if err != nil {
		return Result{}, err
	}
	res.Evaluations += popSize
	bestIdx := argmin(losses)
	res.Loss = losses[bestIdx]
	if v, err := params.FromSlice(pop[bestIdx]); err == nil {
		res.Best = v
	}

	diff := make([]float64, params.Dim)
	for gen := 1; gen <= maxGen; gen++ {
		if err := ctx.Err(); err != nil {
			log.Warn("calibration cancelled at generation %d, returning best-so-far", gen)
			return res, err
		}

		// Mutation factor dithered once per generation.
		f := 0.5 + 0.5*rng.Float64()

		trials := make([][]float64, popSize)
		for i := range pop {
			r1, r2, r3 := distinct(rng, popSize, i)
			mutant := make([]float64, params.Dim)
			floats.SubTo(diff, pop[r2], pop[r3])
			floats.AddScaledTo(mutant, pop[r1], f, diff)

			trial := make([]float64, params.Dim)
			copy(trial, pop[i])
			jRand := rng.Intn(params.Dim)
			for j := 0; j < params.Dim; j++ {
				if j == jRand || rng.Float64() < crossoverProb {
					trial[j] = mutant[j]
				}
			}
			bounds.Clamp(trial)
			trials[i] = trial
		}

		trialLosses, err := evaluate(ctx, objective, trials, workers, gen)
		if err != nil {
			return Result{}, err
		}
		res.Evaluations += popSize

		for i := range pop {
			if trialLosses[i] <= losses[i] {
				pop[i] = trials[i]
				losses[i] = trialLosses[i]
			}
		}

		bestIdx = argmin(losses)
		if losses[bestIdx] < res.Loss {
			res.Loss = losses[bestIdx]
			if v, err := params.FromSlice(pop[bestIdx]); err == nil {
				res.Best = v
			}
			log.Debug("generation %d: best loss %.6f (%s)", gen, res.Loss, res.Best)
		}
		res.Generations = gen

		if converged(losses, tol) {
			res.Converged = true
			log.Info("calibration converged after %d generations, loss %.6f", gen, res.Loss)
			break
		}
	}

	if !res.Converged {
		log.Info("calibration budget exhausted after %d generations, loss %.6f", res.Generations, res.Loss)
	}
	return res, nil
}

// evaluate scores every candidate concurrently. Candidates whose objective
// errors score +Inf so the rest of the population proceeds; only a fully
// failed evaluation aborts the search.
func evaluate(ctx context.Context, objective func([]float64) (float64, error),
	cands [][]float64, workers, generation int) ([]float64, error) {

	losses := make([]float64, len(cands))
	errs := make([]error, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cands {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			loss, err := objective(cands[i])
			if err != nil {
				errs[i] = err
				losses[i] = math.Inf(1)
				return nil
			}
			losses[i] = loss
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	var first error
	var firstCand []float64
	for i, err := range errs {
		if err != nil {
			failed++
			if first == nil {
				first = err
				firstCand = cands[i]
			}
		}
	}
	if failed == len(cands) {
		if v, err := params.FromSlice(firstCand); err == nil {
			internal.DefaultLogger.Error("objective failed for all %d candidates, e.g. %s: %v",
				len(cands), v, first)
		}
		return nil, core.NewOptimizationError(generation, first)
	}
	return losses, nil
}

// converged applies the relative population-spread criterion
// std(losses) <= tol * |mean(losses)|. Non-finite losses keep searching.
func converged(losses []float64, tol float64) bool {
	for _, l := range losses {
		if math.IsInf(l, 0) || math.IsNaN(l) {
			return false
		}
	}
	mean := stat.Mean(losses, nil)
	sd := stat.StdDev(losses, nil)
	return sd <= tol*math.Abs(mean)
}

func argmin(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x < xs[best] {
			best = i
		}
	}
	return best
}

// distinct draws three population indices different from each other and
// from i.
func distinct(rng *rand.Rand, n, i int) (int, int, int) {
	pickIdx := func(exclude ...int) int {
	retry:
		for {
			c := rng.Intn(n)
			for _, e := range exclude {
				if c == e {
					continue retry
				}
			}
			return c
		}
	}
	r1 := pickIdx(i)
	r2 := pickIdx(i, r1)
	r3 := pickIdx(i, r1, r2)
	return r1, r2, r3
}
