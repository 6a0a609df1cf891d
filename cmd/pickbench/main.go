package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pickbench/adapters/baer"
	"pickbench/adapters/dataset"
	"pickbench/adapters/neural"
	"pickbench/adapters/store"
	"pickbench/domain/params"
	"pickbench/domain/pick"
	"pickbench/domain/run"
	"pickbench/internal"
	"pickbench/internal/calib"
	"pickbench/internal/config"
	"pickbench/internal/eval"
	"pickbench/internal/rng"
	"pickbench/internal/sampler"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pickbench",
		Short: "Calibrate and benchmark P-phase arrival pickers",
	}

	rootCmd.AddCommand(
		newCalibrateCmd(),
		newEvaluateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCalibrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate",
		Short: "Tune the parametric picker against a labeled dataset and save the parameters",
		Long: `Calibrate loads the labeled dataset, splits it into train/test with a
seeded shuffle, builds perturbed training windows, searches the detector
parameter bounds with differential evolution, reports residual summaries
on the held-out rows, and writes the optimized parameters plus a run
manifest. Configuration comes from the environment (see internal/config).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalibrate(cmd)
		},
	}
}

func runCalibrate(cmd *cobra.Command) error {
	log := internal.DefaultLogger
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ds, err := dataset.NewReader().Load(cfg.Data.File, cfg.Data.Label)
	if err != nil {
		return err
	}

	streams := rng.NewFactory()
	train, test, err := ds.Split(cfg.Data.TrainFraction,
		streams.SeededStream("split", cfg.Data.Seed))
	if err != nil {
		return err
	}
	log.Info("split %d rows into %d train / %d test (seed %d)",
		ds.Len(), train.Len(), test.Len(), cfg.Data.Seed)

	samplerCfg := sampler.Config{
		WindowLen: cfg.Sampler.WindowLen,
		Perturb:   cfg.Sampler.Perturb,
		Repeat:    cfg.Sampler.Repeat,
	}
	trainX, trainY, err := sampler.Shuffle(train, samplerCfg,
		streams.SeededStream("shuffle-train", cfg.Data.Seed))
	if err != nil {
		return err
	}
	testCfg := samplerCfg
	testCfg.Repeat = 1
	testX, testY, err := sampler.Shuffle(test, testCfg,
		streams.SeededStream("shuffle-test", cfg.Data.Seed))
	if err != nil {
		return err
	}
	log.Info("sampled %d training and %d test windows (perturb +/-%d, repeat %d)",
		len(trainX), len(testX), cfg.Sampler.Perturb, cfg.Sampler.Repeat)

	bounds := params.DefaultBounds()
	picker := baer.New()
	opts := calib.Options{
		PopSize:        cfg.Calib.PopSize,
		MaxGenerations: cfg.Calib.MaxGenerations,
		Tolerance:      cfg.Calib.Tolerance,
		Uncertainty:    cfg.Calib.Uncertainty,
		Workers:        cfg.Calib.Workers,
	}
	result, err := calib.Calibrate(cmd.Context(), picker, trainX, trainY,
		ds.SamplingRate, bounds, opts, streams.SeededStream("calibrate", cfg.Data.Seed))
	if err != nil {
		return err
	}
	log.Info("calibrated parameters: %s (loss %.6f, %d generations, %d evaluations)",
		result.Best, result.Loss, result.Generations, result.Evaluations)

	if err := reportSummaries(cmd, cfg, picker, result.Best, testX, testY, ds.SamplingRate); err != nil {
		return err
	}

	if err := store.New().Save(result.Best, cfg.Paths.ParamsOut); err != nil {
		return err
	}
	log.Info("saved parameters to %s", cfg.Paths.ParamsOut)

	trainDs := pick.Dataset{Traces: trainX, Picks: pick.FromFloats(trainY), SamplingRate: ds.SamplingRate}
	manifest := run.NewManifest(cfg.Data.Seed, trainDs.Hash(), bounds,
		result.Best, result.Loss, result.Generations)
	if err := manifest.Write(cfg.Paths.ManifestOut); err != nil {
		return err
	}
	log.Info("wrote run manifest %s (run %s)", cfg.Paths.ManifestOut, manifest.RunID)
	return nil
}

func newEvaluateCmd() *cobra.Command {
	var paramsPath string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score saved parameters and the inference engine on a labeled dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if paramsPath == "" {
				paramsPath = cfg.Paths.ParamsOut
			}

			best, err := store.New().Load(paramsPath)
			if err != nil {
				return err
			}

			ds, err := dataset.NewReader().Load(cfg.Data.File, cfg.Data.Label)
			if err != nil {
				return err
			}
			testCfg := sampler.Config{
				WindowLen: cfg.Sampler.WindowLen,
				Perturb:   cfg.Sampler.Perturb,
				Repeat:    1,
			}
			testX, testY, err := sampler.Shuffle(ds, testCfg,
				rng.NewFactory().SeededStream("shuffle-test", cfg.Data.Seed))
			if err != nil {
				return err
			}

			return reportSummaries(cmd, cfg, baer.New(), best, testX, testY, ds.SamplingRate)
		},
	}

	cmd.Flags().StringVar(&paramsPath, "params", "", "parameter file to evaluate (defaults to PARAMS_OUT)")
	return cmd
}

// reportSummaries logs residual summaries for the calibrated parametric
// picker and, as the neural baseline, the in-process heuristic engine
// behind the conformer pipeline.
func reportSummaries(cmd *cobra.Command, cfg *config.Config, picker *baer.Detector,
	best params.Vector, testX [][]float64, testY []float64, samplingRate float64) error {

	log := internal.DefaultLogger
	refs := pick.FromFloats(testY)
	tolerance := cfg.Calib.Uncertainty / samplingRate

	baerPreds := picker.PickBatch(testX, best)
	summary, err := eval.Summarize("baer", baerPreds, refs, samplingRate, tolerance)
	if err != nil {
		return err
	}
	log.Info("%s", summary)

	if err := neural.ValidateModelPaths(cfg.Neural.StructurePath, cfg.Neural.WeightsPath); err != nil {
		log.Warn("skipping neural baseline: %v", err)
		return nil
	}
	client, err := neural.NewClient(neural.NewHeuristicEngine(), cfg.Neural.Granularity)
	if err != nil {
		return err
	}
	nnPreds, err := client.Predict(cmd.Context(), testX)
	if err != nil {
		return err
	}
	summary, err = eval.Summarize("neural", nnPreds, refs, samplingRate, tolerance)
	if err != nil {
		return err
	}
	log.Info("%s", summary)
	return nil
}
