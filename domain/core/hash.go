package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Domain-specific hash types
type (
	DatasetHash Hash
	BoundsHash  Hash
)

func (h DatasetHash) String() string { return Hash(h).String() }
func (h BoundsHash) String() string  { return Hash(h).String() }

// ComputeFloatsHash hashes a sequence of float64 slices in order. Used to
// fingerprint datasets and parameter bounds so a calibration run can be
// replayed against provably identical inputs.
func ComputeFloatsHash(rows ...[]float64) Hash {
	hasher := sha256.New()
	buf := make([]byte, 8)
	for _, row := range rows {
		binary.LittleEndian.PutUint64(buf, uint64(len(row)))
		hasher.Write(buf)
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
			hasher.Write(buf)
		}
	}
	return Hash(hex.EncodeToString(hasher.Sum(nil)))
}

func NewDatasetHash(rows ...[]float64) DatasetHash {
	return DatasetHash(ComputeFloatsHash(rows...))
}

func NewBoundsHash(lower, upper []float64) BoundsHash {
	return BoundsHash(ComputeFloatsHash(lower, upper))
}
