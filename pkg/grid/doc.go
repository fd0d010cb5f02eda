// Package grid provides the dense cell grid that the layout engine
// materializes from a diagram's nodes and edges.
//
// # Overview
//
// A [Grid] is a height x width array of [Cell] values. Each cell is a tagged
// union: it is empty, covered by a node, or part of an edge path. Grids are
// never the source of truth. The diagram package owns nodes and edges and
// builds a fresh grid every time it needs to answer a spatial question, so a
// grid is always consistent with the diagram it came from and is discarded
// after use.
//
// # Spatial Queries
//
// [Grid.IsCellEmpty] is strict: coordinates outside the grid are not empty.
// [Grid.IsCellEmptyOrOutOfBounds] treats the outside as free space, because
// the grid can always grow there. Node placement builds on the second form:
// [Grid.ValidNodePlacementCells] returns empty cells whose whole
// 8-neighbourhood is free, so a new 1x1 node touches nothing, not even
// diagonally.
//
// # Routing
//
// [Grid.FindPathWithForcedEnds] routes a Manhattan path between two
// attachment points. The first move out of the start and the last move into
// the end are forced (the "breathing space" cells), and the middle is a
// breadth-first search over empty cells that expands neighbours in the fixed
// order E, S, W, N. The order only breaks ties between equally short paths,
// but it is kept stable so that routed fixtures reproduce exactly.
//
// Every non-empty cell is impassable. Edges never cross each other or run
// through nodes.
//
// # Text Forms
//
// [Grid.Text] writes the structural form: one line per row, one
// whitespace-separated token per cell, "·" for empty cells and the occupant
// id otherwise. [ParseText] reads it back, and Text(ParseText(Text(g)))
// equals Text(g). [Grid.Flow] writes the same grid with every edge cell
// replaced by its box-drawing or arrow glyph from [Glyph].
//
//	g := grid.New(2, 3)
//	g.Set(grid.Coordinate{Row: 0, Col: 0}, grid.NodeCell("a"))
//	fmt.Println(g.Text())
//	// a · ·
//	// · · ·
//
// # Concurrency
//
// Grid values are not safe for concurrent mutation. Read-only queries on a
// grid that is no longer being modified can run in parallel.
package grid
