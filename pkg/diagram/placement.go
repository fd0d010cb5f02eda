package diagram

import (
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// AddNodeAtValidSpot places a 1x1 node on a random cell that touches
// nothing, diagonals included. It fails with NO_PLACEMENT when no such cell
// exists; growing the grid and retrying is up to the caller.
func (m *Manager) AddNodeAtValidSpot(id string) (Node, error) {
	if err := m.checkNewID(id); err != nil {
		return Node{}, err
	}
	c, ok := m.Grid().RandomValidNodePlacementCell(m.rng)
	if !ok {
		return Node{}, errs.New(errs.ErrCodeNoPlacement, "no valid placement for new node %q", id)
	}
	n := Node{ID: id, Row: c.Row, Col: c.Col, Width: 1, Height: 1}
	if err := m.AddNode(n); err != nil {
		return Node{}, err
	}
	return n, nil
}

// perimeterCell is a coordinate touching a node together with the side of
// the node it lies on.
type perimeterCell struct {
	at   grid.Coordinate
	side grid.Direction
}

// perimeter lists the ring around n: the north side, the south side, the
// west side, then the east side, each in increasing order.
func perimeter(n Node) []perimeterCell {
	out := make([]perimeterCell, 0, 2*(n.Width+n.Height))
	for c := n.Col; c < n.Col+n.Width; c++ {
		out = append(out, perimeterCell{grid.At(n.Row-1, c), grid.North})
	}
	for c := n.Col; c < n.Col+n.Width; c++ {
		out = append(out, perimeterCell{grid.At(n.Row+n.Height, c), grid.South})
	}
	for r := n.Row; r < n.Row+n.Height; r++ {
		out = append(out, perimeterCell{grid.At(r, n.Col-1), grid.West})
	}
	for r := n.Row; r < n.Row+n.Height; r++ {
		out = append(out, perimeterCell{grid.At(r, n.Col+n.Width), grid.East})
	}
	return out
}

// NeighboringCellCoords returns the coordinates orthogonally touching the
// rectangle of n. Out-of-bounds coordinates are included.
func (m *Manager) NeighboringCellCoords(n Node) []grid.Coordinate {
	ring := perimeter(n)
	out := make([]grid.Coordinate, len(ring))
	for i, p := range ring {
		out[i] = p.at
	}
	return out
}

// EmptyNeighbors returns the in-bounds empty cells touching n.
func (m *Manager) EmptyNeighbors(n Node) []grid.Coordinate {
	g := m.Grid()
	var out []grid.Coordinate
	for _, p := range perimeter(n) {
		if g.IsCellEmpty(p.at) {
			out = append(out, p.at)
		}
	}
	return out
}

// ValidAttachmentPoints returns the empty cells touching n that have a
// second empty cell directly behind them, away from the node. An edge
// leaving such a point can always make its first move.
func (m *Manager) ValidAttachmentPoints(n Node) []grid.Coordinate {
	return m.attachmentPoints(m.Grid(), n)
}

func (m *Manager) attachmentPoints(g *grid.Grid, n Node) []grid.Coordinate {
	var out []grid.Coordinate
	for _, p := range perimeter(n) {
		if g.IsCellEmpty(p.at) && g.IsCellEmpty(p.at.Step(p.side)) {
			out = append(out, p.at)
		}
	}
	return out
}

// SideOf reports which side of n the coordinate p touches. Corners
// diagonal to the rectangle touch no side.
func SideOf(n Node, p grid.Coordinate) (grid.Direction, bool) {
	for _, d := range grid.Directions {
		if n.Contains(p.Step(d.Opposite())) && !n.Contains(p) {
			return d, true
		}
	}
	return grid.North, false
}
