package grid_test

import (
	"fmt"
	"log"

	"github.com/katalvlaran/gosom/grid"
)

// ExampleTopology_Influence builds a 2×2 lattice and shows how the
// Gaussian kernel weighs unit 0's neighbors at radius 1: the unit itself
// gets full influence, orthogonal neighbors exp(-1/2), the diagonal
// neighbor exp(-1).
func ExampleTopology_Influence() {
	topo, err := grid.New(2, 2)
	if err != nil {
		log.Fatal(err)
	}

	kernel, err := topo.Influence(1.0)
	if err != nil {
		log.Fatal(err)
	}

	for j := 0; j < topo.Units(); j++ {
		row, col := topo.Coords(j)
		fmt.Printf("unit %d (%d,%d): %.4f\n", j, row, col, kernel.At(0, j))
	}
	// Output:
	// unit 0 (0,0): 1.0000
	// unit 1 (0,1): 0.6065
	// unit 2 (1,0): 0.6065
	// unit 3 (1,1): 0.3679
}
