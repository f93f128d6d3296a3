package grid

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// New constructs the topology for a width×height map and precomputes the
// (units × units) squared grid distance matrix.
// Returns ErrBadDimensions if either dimension is below 1.
// Complexity: O(U²) time and memory, U = width·height.
func New(width, height int) (*Topology, error) {
	if width < 1 || height < 1 {
		return nil, ErrBadDimensions
	}
	t := &Topology{
		width:  width,
		height: height,
		units:  width * height,
	}
	t.distances = mat.NewDense(t.units, t.units, nil)
	for i := 0; i < t.units; i++ {
		row := t.distances.RawRowView(i)
		t.gridDistance(i, row)
	}

	return t, nil
}

// Index maps grid coordinates to the flat unit index: row*height + col.
// Complexity: O(1).
func (t *Topology) Index(row, col int) int {
	return row*t.height + col
}

// Coords maps a flat unit index back to grid coordinates under the fixed
// convention row = idx / height, col = idx % height.
// Complexity: O(1).
func (t *Topology) Coords(idx int) (row, col int) {
	return idx / t.height, idx % t.height
}

// gridDistance fills dst (length Units) with the squared Euclidean
// distance from unit idx to every unit's grid coordinates.
func (t *Topology) gridDistance(idx int, dst []float64) {
	row, col := t.Coords(idx)
	for j := 0; j < t.units; j++ {
		jr, jc := t.Coords(j)
		dr, dc := float64(jr-row), float64(jc-col)
		dst[j] = dr*dr + dc*dc
	}
}

// DistanceRow returns the squared grid distances from unit i to every
// unit, as a read-only view into the cached distance matrix.
// Returns ErrUnitIndex if i is outside [0, Units).
// Complexity: O(1).
func (t *Topology) DistanceRow(i int) ([]float64, error) {
	if i < 0 || i >= t.units {
		return nil, ErrUnitIndex
	}

	return t.distances.RawRowView(i), nil
}

// Distances returns the full (units × units) squared grid distance
// matrix. The returned matrix is a read-only view; callers must not
// mutate it.
func (t *Topology) Distances() *mat.Dense {
	return t.distances
}

// Influence converts the cached distance grid and a radius into the
// Gaussian neighborhood kernel exp(-d² / (2·radius²)), elementwise.
// The kernel is 1 on the diagonal (self-influence is maximal) and decays
// with grid distance; shrinking the radius sharpens the decay.
// Returns ErrNonPositiveRadius if radius ≤ 0; a positive radius at or
// below machine epsilon is valid and produces a near-delta kernel.
// Complexity: O(U²) time; allocates a fresh U×U matrix per call.
func (t *Topology) Influence(radius float64) (*mat.Dense, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return nil, ErrNonPositiveRadius
	}
	denom := 2 * radius * radius
	kernel := mat.NewDense(t.units, t.units, nil)
	for i := 0; i < t.units; i++ {
		src := t.distances.RawRowView(i)
		dst := kernel.RawRowView(i)
		for j, d := range src {
			dst[j] = math.Exp(-d / denom)
		}
	}

	return kernel, nil
}
