// Package store persists optimized detector parameters as a structured
// JSON key-value file.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"pickbench/domain/core"
	"pickbench/domain/params"
	"pickbench/ports"
)

// JSONStore reads and writes parameter vectors as .json files with one
// named field per parameter.
type JSONStore struct{}

var _ ports.ParamStore = (*JSONStore)(nil)

// New creates a JSON parameter store.
func New() *JSONStore {
	return &JSONStore{}
}

// Save writes the vector to path. The extension must be .json; anything
// else is a configuration error, not a silent format switch.
func (s *JSONStore) Save(v params.Vector, path string) error {
	if err := checkExtension(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a vector from path. A missing file is a not-found error;
// content that does not decode into the seven named fields is a parse
// error.
func (s *JSONStore) Load(path string) (params.Vector, error) {
	if err := checkExtension(path); err != nil {
		return params.Vector{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return params.Vector{}, core.NewNotFoundError(path)
		}
		return params.Vector{}, err
	}

	var v params.Vector
	if err := json.Unmarshal(data, &v); err != nil {
		return params.Vector{}, core.NewParseError(path, err)
	}
	return v, nil
}

func checkExtension(path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return core.NewConfigError("params_path", "must be a '.json' file, got "+path)
	}
	return nil
}
