package ports

import (
	"pickbench/domain/params"
)

// ParamStore persists a finalized parameter vector as a structured file.
type ParamStore interface {
	Save(v params.Vector, path string) error
	Load(path string) (params.Vector, error)
}
