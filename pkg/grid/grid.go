package grid

import (
	"math/rand/v2"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
)

// Grid is a dense height x width array of cells.
//
// The zero value is an empty 0x0 grid. Use [New] or [OneByOne] to create a
// grid of a given size.
type Grid struct {
	height int
	width  int
	cells  [][]Cell
}

// New creates a grid of empty cells. Negative sizes are treated as zero.
func New(height, width int) *Grid {
	height, width = max(height, 0), max(width, 0)
	cells := make([][]Cell, height)
	for r := range cells {
		cells[r] = make([]Cell, width)
	}
	return &Grid{height: height, width: width, cells: cells}
}

// OneByOne returns a grid with a single empty cell, the starting point of
// every layout.
func OneByOne() *Grid { return New(1, 1) }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// At returns the cell at c. The second result is false out of bounds.
func (g *Grid) At(c Coordinate) (Cell, bool) {
	if !g.InBounds(c) {
		return Cell{}, false
	}
	return g.cells[c.Row][c.Col], true
}

// Set stores cell at c and reports whether c was in bounds.
func (g *Grid) Set(c Coordinate, cell Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	g.cells[c.Row][c.Col] = cell
	return true
}

// Row returns a copy of row r, or nil when r is out of range.
func (g *Grid) Row(r int) []Cell {
	if r < 0 || r >= g.height {
		return nil
	}
	return append([]Cell(nil), g.cells[r]...)
}

// Column returns a copy of column c, or nil when c is out of range.
func (g *Grid) Column(c int) []Cell {
	if c < 0 || c >= g.width {
		return nil
	}
	col := make([]Cell, g.height)
	for r := range g.cells {
		col[r] = g.cells[r][c]
	}
	return col
}

// IsCellEmpty reports whether c is in bounds and empty.
func (g *Grid) IsCellEmpty(c Coordinate) bool {
	cell, ok := g.At(c)
	return ok && cell.IsEmpty()
}

// IsCellEmptyOrOutOfBounds reports whether c is empty or outside the grid.
// The outside counts as free space because the grid can grow into it.
func (g *Grid) IsCellEmptyOrOutOfBounds(c Coordinate) bool {
	cell, ok := g.At(c)
	return !ok || cell.IsEmpty()
}

// EmptyCells returns every empty coordinate in row-major order.
func (g *Grid) EmptyCells() []Coordinate {
	var out []Coordinate
	for r, row := range g.cells {
		for c, cell := range row {
			if cell.IsEmpty() {
				out = append(out, Coordinate{Row: r, Col: c})
			}
		}
	}
	return out
}

// ValidNodePlacementCells returns the empty cells whose eight neighbours are
// all empty or out of bounds, in row-major order.
func (g *Grid) ValidNodePlacementCells() []Coordinate {
	var out []Coordinate
	for _, c := range g.EmptyCells() {
		if g.isIsolated(c) {
			out = append(out, c)
		}
	}
	return out
}

func (g *Grid) isIsolated(c Coordinate) bool {
	for _, n := range c.Neighbors8() {
		if !g.IsCellEmptyOrOutOfBounds(n) {
			return false
		}
	}
	return true
}

// RandomValidNodePlacementCell picks uniformly among
// [Grid.ValidNodePlacementCells]. It returns false when there is none. A nil
// rng uses the global source.
func (g *Grid) RandomValidNodePlacementCell(rng *rand.Rand) (Coordinate, bool) {
	candidates := g.ValidNodePlacementCells()
	if len(candidates) == 0 {
		return Coordinate{}, false
	}
	var i int
	if rng != nil {
		i = rng.IntN(len(candidates))
	} else {
		i = rand.IntN(len(candidates))
	}
	return candidates[i], true
}

// AddRowToEnd appends an empty row at the bottom.
func (g *Grid) AddRowToEnd() {
	g.cells = append(g.cells, make([]Cell, g.width))
	g.height++
}

// AddColToEnd appends an empty column on the right.
func (g *Grid) AddColToEnd() {
	for r := range g.cells {
		g.cells[r] = append(g.cells[r], Cell{})
	}
	g.width++
}

// Check verifies that the cell array matches the declared dimensions.
// A failure is a GRID_INTEGRITY error and indicates a bug in the caller.
func (g *Grid) Check() error {
	if len(g.cells) != g.height {
		return errs.New(errs.ErrCodeGridIntegrity, "grid has %d rows, want %d", len(g.cells), g.height)
	}
	for r, row := range g.cells {
		if len(row) != g.width {
			return errs.New(errs.ErrCodeGridIntegrity, "row %d has %d cells, want %d", r, len(row), g.width)
		}
	}
	return nil
}

// Equal reports whether g and o have the same size and identical cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.height != o.height || g.width != o.width {
		return false
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] != o.cells[r][c] {
				return false
			}
		}
	}
	return true
}
