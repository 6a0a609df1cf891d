package ports

import (
	"pickbench/domain/pick"
)

// DatasetSource supplies an already-loaded labeled dataset. Loading,
// station filtering, and train/test partitioning policy live behind this
// port; the core only consumes the dataset shape.
type DatasetSource interface {
	// Load reads the dataset at path, keeping only rows whose dataset
	// label matches label when label is non-empty.
	Load(path string, label string) (pick.Dataset, error)
}
