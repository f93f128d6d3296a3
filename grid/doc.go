// Package grid models the spatial arrangement of a Self-Organizing Map:
// a fixed width×height rectangular lattice of units addressed by a flat
// index, together with the Gaussian neighborhood kernel derived from it.
//
// Index convention:
//
//	row = idx / height
//	col = idx % height
//
// i.e. "width" indexes the outer (row) dimension. The convention is part
// of the public contract — BMU coordinates are only reproducible across
// implementations if the bijection is preserved.
//
// A Topology is immutable once built. Its pairwise squared-Euclidean grid
// distance matrix is computed exactly once at construction and is a pure
// function of (width, height); every later read is O(1) per entry.
//
// The neighborhood kernel converts that distance matrix plus a radius r
// into per-unit-pair influence weights:
//
//	influence[i][j] = exp(-dist²[i][j] / (2·r²))
//
// The radius must be strictly positive. A radius at or below machine
// epsilon yields a near-delta kernel (only the BMU itself receives
// material influence) — that is a valid late-training regime, not an
// error.
//
// Complexity:
//
//	– New:       O(U²) time and memory, U = width·height
//	– Influence: O(U²) time per call (recomputed when the radius changes)
//	– Index/Coords/DistanceRow: O(1)
//
// Errors (sentinel):
//
//	– ErrBadDimensions     if width or height is < 1
//	– ErrNonPositiveRadius if Influence is called with radius ≤ 0
//	– ErrUnitIndex         if a unit index is out of [0, U)
package grid
