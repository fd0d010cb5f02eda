package diagram

import (
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// axis selects rows or columns so that resizing code is written once.
type axis uint8

const (
	rowAxis axis = iota
	colAxis
)

func (a axis) String() string {
	if a == rowAxis {
		return "row"
	}
	return "column"
}

// pos returns the index of c along the axis.
func (a axis) pos(c grid.Coordinate) int {
	if a == rowAxis {
		return c.Row
	}
	return c.Col
}

// shift moves c by delta along the axis.
func (a axis) shift(c grid.Coordinate, delta int) grid.Coordinate {
	if a == rowAxis {
		c.Row += delta
	} else {
		c.Col += delta
	}
	return c
}

// span returns pointers to the start and size of n along the axis.
func (a axis) span(n *Node) (start, size *int) {
	if a == rowAxis {
		return &n.Row, &n.Height
	}
	return &n.Col, &n.Width
}

// forward is the direction of increasing index.
func (a axis) forward() grid.Direction {
	if a == rowAxis {
		return grid.South
	}
	return grid.East
}

// crosses reports whether cell is a straight segment running across a line
// of this axis.
func (a axis) crosses(cell grid.Cell) bool {
	if a == rowAxis {
		return cell.Vertical()
	}
	return cell.Horizontal()
}

func (a axis) line(g *grid.Grid, i int) []grid.Cell {
	if a == rowAxis {
		return g.Row(i)
	}
	return g.Column(i)
}

// extent returns a pointer to the stored canvas extent along the axis.
func (m *Manager) extent(a axis) *int {
	if a == rowAxis {
		return &m.height
	}
	return &m.width
}

func (m *Manager) size(a axis) int {
	h, w := m.Size()
	if a == rowAxis {
		return h
	}
	return w
}

// insertLine inserts an empty line before index at. Everything at or beyond
// at moves one step forward. Nodes spanning the gap grow across it and every
// edge stepping across it gains a cell there, so the diagram stays connected.
func (m *Manager) insertLine(a axis, at int) {
	h, w := m.Size()
	m.height, m.width = h, w
	*m.extent(a)++

	for _, n := range m.nodes {
		start, length := a.span(n)
		switch {
		case *start >= at:
			*start++
		case *start+*length > at:
			*length++
		}
	}
	for _, e := range m.edges {
		e.Cells = splitCells(a, *e, at)
	}
}

// splitCells returns the path of e after inserting a line before index at.
// The node sides count as steps too: an end cell separated from its node
// by the new line gets a cell on it.
func splitCells(a axis, e Edge, at int) []grid.Coordinate {
	if len(e.Cells) == 0 {
		return e.Cells
	}
	gap := func(p, q grid.Coordinate) (grid.Coordinate, bool) {
		if a.pos(p) > a.pos(q) {
			p, q = q, p
		}
		if a.pos(p) == at-1 && a.pos(q) == at {
			return a.shift(p, 1), true
		}
		return grid.Coordinate{}, false
	}

	first, last := e.Cells[0], e.Cells[len(e.Cells)-1]
	out := make([]grid.Coordinate, 0, len(e.Cells)+2)
	if c, ok := gap(first.Step(e.Sender.Direction), first); ok {
		out = append(out, c)
	}
	for j, c := range e.Cells {
		if j > 0 {
			if g, ok := gap(e.Cells[j-1], c); ok {
				out = append(out, g)
			}
		}
		if a.pos(c) >= at {
			c = a.shift(c, 1)
		}
		out = append(out, c)
	}
	if c, ok := gap(last, last.Step(e.Receiver.Direction)); ok {
		out = append(out, c)
	}
	return out
}

// InsertRow inserts an empty row before row at. at may equal the height to
// append. Nodes and edges crossing the gap are stretched over it.
func (m *Manager) InsertRow(at int) error { return m.insert(rowAxis, at) }

// InsertColumn is [Manager.InsertRow] for columns.
func (m *Manager) InsertColumn(at int) error { return m.insert(colAxis, at) }

func (m *Manager) insert(a axis, at int) error {
	size := m.size(a)
	if at < 0 || at > size {
		return errs.New(errs.ErrCodeInvalidInput, "%s %d out of range [0, %d]", a, at, size)
	}
	m.insertLine(a, at)
	m.record(EventGrow, "inserted %s at %d", a, at)
	return nil
}

// AddRowToStart inserts an empty row at the top.
func (m *Manager) AddRowToStart() {
	m.insertLine(rowAxis, 0)
	m.record(EventGrow, "added row at start")
}

// AddColToStart inserts an empty column on the left.
func (m *Manager) AddColToStart() {
	m.insertLine(colAxis, 0)
	m.record(EventGrow, "added column at start")
}

// AddRowToEnd appends an empty row at the bottom.
func (m *Manager) AddRowToEnd() {
	m.insertLine(rowAxis, m.size(rowAxis))
	m.record(EventGrow, "added row at end")
}

// AddColToEnd appends an empty column on the right.
func (m *Manager) AddColToEnd() {
	m.insertLine(colAxis, m.size(colAxis))
	m.record(EventGrow, "added column at end")
}
