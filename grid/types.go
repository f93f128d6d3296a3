// Package grid defines the Topology type for the gosom map lattice.
package grid

import "gonum.org/v1/gonum/mat"

// Topology is the immutable spatial layout of a width×height map.
// distances[i][j] holds the squared Euclidean distance between the grid
// coordinates of unit i and unit j; it is symmetric with a zero diagonal
// and never mutated after New.
type Topology struct {
	width, height int
	units         int
	distances     *mat.Dense
}

// Width returns the outer (row) dimension of the lattice.
func (t *Topology) Width() int { return t.width }

// Height returns the inner (column) dimension of the lattice.
func (t *Topology) Height() int { return t.height }

// Units returns the number of map units, width·height.
func (t *Topology) Units() int { return t.units }
