// Package run records what went into a calibration so it can be replayed.
package run

import (
	"encoding/json"
	"os"

	"pickbench/domain/core"
	"pickbench/domain/params"
)

// Manifest is the truth source for a calibration run: the seed, the
// fingerprints of the training data and search bounds, and the result.
// Two runs with equal fingerprints and seed produce the identical best
// vector; a differing vector under equal fingerprints indicates a
// determinism bug, not a data change.
type Manifest struct {
	RunID       core.RunID       `json:"run_id"`
	Seed        int64            `json:"seed"`
	DatasetHash core.DatasetHash `json:"dataset_hash"`
	BoundsHash  core.BoundsHash  `json:"bounds_hash"`
	Best        params.Vector    `json:"best"`
	Loss        float64          `json:"loss"`
	Generations int              `json:"generations"`
	CreatedAt   core.Timestamp   `json:"created_at"`
}

// NewManifest creates a manifest for a completed calibration run.
func NewManifest(seed int64, datasetHash core.DatasetHash, bounds params.Bounds, best params.Vector, loss float64, generations int) *Manifest {
	return &Manifest{
		RunID:       core.NewRunID(),
		Seed:        seed,
		DatasetHash: datasetHash,
		BoundsHash:  bounds.Hash(),
		Best:        best,
		Loss:        loss,
		Generations: generations,
		CreatedAt:   core.Now(),
	}
}

// Validate checks if the manifest is complete.
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewConfigError("manifest", "run_id cannot be empty")
	}
	if core.Hash(m.DatasetHash).IsEmpty() {
		return core.NewConfigError("manifest", "dataset_hash cannot be empty")
	}
	if core.Hash(m.BoundsHash).IsEmpty() {
		return core.NewConfigError("manifest", "bounds_hash cannot be empty")
	}
	return nil
}

// Write persists the manifest as JSON next to the calibration outputs.
func (m *Manifest) Write(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
