// Package config loads run configuration from the environment with
// documented defaults. A .env file in the working directory is honored
// when present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"pickbench/domain/core"
)

// Config represents the complete calibration run configuration
type Config struct {
	Data    DataConfig
	Sampler SamplerConfig
	Calib   CalibConfig
	Neural  NeuralConfig
	Paths   PathConfig
}

// DataConfig holds dataset selection settings
type DataConfig struct {
	File          string  // labeled dataset file (.csv or .xlsx)
	Label         string  // dataset label filter, empty keeps all rows
	TrainFraction float64 // fraction of rows used for calibration
	Seed          int64   // base seed for all randomized operations
}

// SamplerConfig holds window perturbation settings
type SamplerConfig struct {
	WindowLen int // model window length in samples; 0 derives from trace length
	Perturb   int // symmetric perturbation range in samples
	Repeat    int // training augmentation repeats
}

// CalibConfig holds optimizer search settings
type CalibConfig struct {
	PopSize        int     // population size; 0 uses 15 per dimension
	MaxGenerations int
	Tolerance      float64
	Uncertainty    float64 // scoring tolerance in samples
	Workers        int     // parallel objective evaluations; 0 uses GOMAXPROCS
}

// NeuralConfig holds external inference engine settings
type NeuralConfig struct {
	Granularity   int    // required batch-size multiple of the engine
	StructurePath string // model structure file (.json), engine-owned format
	WeightsPath   string // model weights file (.hdf5), engine-owned format
}

// PathConfig holds output locations
type PathConfig struct {
	ParamsOut   string // optimized detector parameters (.json)
	ManifestOut string // calibration run manifest
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	// Optional .env support for local runs
	_ = godotenv.Load()

	cfg := &Config{
		Data: DataConfig{
			File:          getEnv("DATA_FILE", "data.csv"),
			Label:         getEnv("DATASET_LABEL", ""),
			TrainFraction: getEnvFloat("TRAIN_FRACTION", 0.75),
			Seed:          getEnvInt64("SEED", 42),
		},
		Sampler: SamplerConfig{
			WindowLen: getEnvInt("WINDOW_LEN", 0),
			Perturb:   getEnvInt("PERTURB", 50),
			Repeat:    getEnvInt("TRAIN_REPEAT", 5),
		},
		Calib: CalibConfig{
			PopSize:        getEnvInt("POP_SIZE", 0),
			MaxGenerations: getEnvInt("MAX_GENERATIONS", 1000),
			Tolerance:      getEnvFloat("TOLERANCE", 0.01),
			Uncertainty:    getEnvFloat("UNCERTAINTY", 30),
			Workers:        getEnvInt("WORKERS", 0),
		},
		Neural: NeuralConfig{
			Granularity:   getEnvInt("BATCH_GRANULARITY", 3),
			StructurePath: getEnv("MODEL_STRUCTURE", "models/p_model.json"),
			WeightsPath:   getEnv("MODEL_WEIGHTS", "models/p_weights.hdf5"),
		},
		Paths: PathConfig{
			ParamsOut:   getEnv("PARAMS_OUT", "models/optimized_params.json"),
			ManifestOut: getEnv("MANIFEST_OUT", "models/calibration_manifest.json"),
		},
	}

	return cfg, cfg.Validate()
}

// Validate rejects statically invalid settings before any work starts.
func (c *Config) Validate() error {
	if c.Data.TrainFraction <= 0 || c.Data.TrainFraction >= 1 {
		return core.NewConfigError("TRAIN_FRACTION", "must be strictly between 0 and 1")
	}
	if c.Sampler.Perturb <= 0 {
		return core.NewConfigError("PERTURB", "must be positive")
	}
	if c.Sampler.Repeat < 1 {
		return core.NewConfigError("TRAIN_REPEAT", "must be at least 1")
	}
	if c.Neural.Granularity <= 0 {
		return core.NewConfigError("BATCH_GRANULARITY", "must be a positive integer")
	}
	if c.Calib.Uncertainty <= 0 {
		return core.NewConfigError("UNCERTAINTY", "must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
