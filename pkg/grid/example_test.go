package grid_test

import (
	"fmt"

	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

func ExampleGrid_FindPathWithForcedEnds() {
	g, _ := grid.ParseText("· · · · ·\n· · x · ·\n· · · · ·")

	path := g.FindPathWithForcedEnds(grid.At(1, 0), grid.At(1, 4), grid.East, grid.West)
	fmt.Println(path)
	// Output: [(1,0) (1,1) (2,1) (2,2) (2,3) (1,3) (1,4)]
}

func ExampleGrid_Flow() {
	g := grid.New(2, 3)
	g.Set(grid.At(0, 0), grid.NodeCell("a"))
	g.Set(grid.At(0, 1), grid.EdgeCell("0", grid.West, grid.East, false, false))
	g.Set(grid.At(0, 2), grid.EdgeCell("0", grid.West, grid.South, false, true))
	g.Set(grid.At(1, 2), grid.NodeCell("b"))

	fmt.Println(g.Flow())
	fmt.Println()
	fmt.Println(g.Text())
	// Output:
	// a ─ ⬑
	// · · b
	//
	// a 0 0
	// · · b
}
