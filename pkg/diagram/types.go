package diagram

import (
	"slices"

	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// Node is a rectangle of cells with its top-left corner at (Row, Col).
type Node struct {
	ID     string
	Row    int
	Col    int
	Width  int
	Height int
}

// Origin returns the top-left coordinate.
func (n Node) Origin() grid.Coordinate { return grid.At(n.Row, n.Col) }

// Contains reports whether c lies inside the rectangle.
func (n Node) Contains(c grid.Coordinate) bool {
	return c.Row >= n.Row && c.Row < n.Row+n.Height &&
		c.Col >= n.Col && c.Col < n.Col+n.Width
}

// Cells returns every covered coordinate, row-major.
func (n Node) Cells() []grid.Coordinate {
	out := make([]grid.Coordinate, 0, n.Width*n.Height)
	for r := n.Row; r < n.Row+n.Height; r++ {
		for c := n.Col; c < n.Col+n.Width; c++ {
			out = append(out, grid.At(r, c))
		}
	}
	return out
}

// Overlaps reports whether the rectangles of n and o share a cell.
func (n Node) Overlaps(o Node) bool {
	return n.Row < o.Row+o.Height && o.Row < n.Row+n.Height &&
		n.Col < o.Col+o.Width && o.Col < n.Col+n.Width
}

// Attachment fixes one end of an edge to a node. Direction points from the
// end cell of the path back into the node.
type Attachment struct {
	NodeID    string
	Direction grid.Direction
	HasArrow  bool
}

// Edge is a routed connection. Cells runs from the cell touching the sender
// to the cell touching the receiver.
type Edge struct {
	ID       string
	Sender   Attachment
	Receiver Attachment
	Cells    []grid.Coordinate
}

func (e Edge) clone() Edge {
	e.Cells = slices.Clone(e.Cells)
	return e
}

// Links returns, for each path cell, the direction toward the previous and
// the next step. The first cell points to the sender and the last to the
// receiver. Non-adjacent neighbours yield North, which [Manager.Validate]
// reports.
func (e Edge) Links() (prev, next []grid.Direction) {
	n := len(e.Cells)
	prev = make([]grid.Direction, n)
	next = make([]grid.Direction, n)
	for i, c := range e.Cells {
		if i == 0 {
			prev[i] = e.Sender.Direction
		} else {
			prev[i], _ = c.DirectionTo(e.Cells[i-1])
		}
		if i == n-1 {
			next[i] = e.Receiver.Direction
		} else {
			next[i], _ = c.DirectionTo(e.Cells[i+1])
		}
	}
	return prev, next
}

// gridCells returns the materialized cells of the path in order.
func (e Edge) gridCells() []grid.Cell {
	prev, next := e.Links()
	out := make([]grid.Cell, len(e.Cells))
	last := len(e.Cells) - 1
	for i := range e.Cells {
		out[i] = grid.EdgeCell(e.ID, prev[i], next[i],
			i == 0 && e.Sender.HasArrow,
			i == last && e.Receiver.HasArrow)
	}
	return out
}
