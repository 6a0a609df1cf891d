package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Static configuration errors (bad extension, non-positive granularity,
	// invalid perturbation range or repeat count, out-of-bounds parameters)
	ErrConfig = errors.New("invalid configuration")

	// Shape errors (window/label length mismatches, pick outside trace)
	ErrShape = errors.New("shape mismatch")

	// Parameter store I/O errors
	ErrNotFound = errors.New("resource not found")
	ErrParse    = errors.New("malformed content")

	// Calibration errors
	ErrOptimization = errors.New("objective unusable for every candidate")
)

// Error constructors with context
func NewConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfig, field, reason)
}

func NewShapeError(what string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrShape, what, reason)
}

func NewRowShapeError(row int, reason string) error {
	return fmt.Errorf("%w: row %d: %s", ErrShape, row, reason)
}

func NewNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

func NewParseError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrParse, path, err)
}

func NewOptimizationError(generation int, err error) error {
	return fmt.Errorf("%w: generation %d: %v", ErrOptimization, generation, err)
}

// Error checking helpers
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

func IsShapeError(err error) bool {
	return errors.Is(err, ErrShape)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

func IsOptimizationError(err error) bool {
	return errors.Is(err, ErrOptimization)
}
