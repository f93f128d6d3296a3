package grid

import "errors"

var (
	// ErrBadDimensions indicates width or height below 1.
	ErrBadDimensions = errors.New("grid: width and height must be at least 1")

	// ErrNonPositiveRadius indicates a neighborhood radius ≤ 0.
	ErrNonPositiveRadius = errors.New("grid: neighborhood radius must be positive")

	// ErrUnitIndex indicates a flat unit index outside [0, Units).
	ErrUnitIndex = errors.New("grid: unit index out of range")
)
