package gridgraph_test

import (
	"fmt"

	"github.com/katalvlaran/lvraster/gridgraph"
)

// ExampleGridGraph_ConnectedComponents demonstrates how to identify
// contiguous regions of equal non-zero values in a 2D grid.
// Scenario:
//
//   - Grid values: 0 = background, 1,2,3 = different class IDs
//   - Conn4: 4-directional adjacency (N/E/S/W)
//   - Expect three regions, one per ID, even where IDs touch.
//
// Complexity: O(W·H·4), Memory: O(W·H)
func ExampleGridGraph_ConnectedComponents() {
	gg, _ := gridgraph.From2D([][]float64{
		{0, 1, 1, 0, 2},
		{1, 1, 0, 2, 2},
		{3, 0, 2, 2, 0},
	}, gridgraph.Conn4)

	comps := gg.ConnectedComponents()
	fmt.Println("components:", len(comps))
	for i, comp := range comps {
		fmt.Printf("component %d:", i)
		for _, idx := range comp {
			x, y := gg.Coordinate(idx)
			fmt.Printf(" (%d,%d)", x, y)
		}
		fmt.Println()
	}

	// Output:
	// components: 3
	// component 0: (1,0) (2,0) (1,1) (0,1)
	// component 1: (4,0) (4,1) (3,1) (3,2) (2,2)
	// component 2: (0,2)
}

// ExampleGridGraph_ConnectedPixelCount caps region sizes, as a patch-size
// filter would before masking small regions.
func ExampleGridGraph_ConnectedPixelCount() {
	gg, _ := gridgraph.From2D([][]float64{
		{1, 1, 1},
		{0, 0, 1},
		{4, 0, 0},
	}, gridgraph.Conn8)
	counts, _ := gg.ConnectedPixelCount(3)
	fmt.Println(counts)

	// Output:
	// [3 3 3 0 0 3 1 0 0]
}
