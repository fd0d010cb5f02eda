package diagram

import (
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// ClonableColumns returns the indices of columns that [Manager.CloneColumn]
// accepts, in increasing order.
func (m *Manager) ClonableColumns() []int { return m.clonable(colAxis) }

// ClonableRows returns the indices of rows that [Manager.CloneRow] accepts,
// in increasing order.
func (m *Manager) ClonableRows() []int { return m.clonable(rowAxis) }

func (m *Manager) clonable(a axis) []int {
	g := m.Grid()
	var out []int
	for i := range m.size(a) {
		if cloneBlocker(a, a.line(g, i)) == "" {
			out = append(out, i)
		}
	}
	return out
}

// cloneBlocker explains why a line cannot be duplicated, or returns "".
// Every edge cell must pass straight across the line and none may carry an
// arrow, since a copy would show a second arrow head.
func cloneBlocker(a axis, line []grid.Cell) string {
	for _, cell := range line {
		if cell.HasArrow() {
			return "contains edge cell with arrow"
		}
	}
	for _, cell := range line {
		if cell.Kind == grid.KindEdge && !a.crosses(cell) {
			return "contains edge cell that does not cross it"
		}
	}
	return ""
}

// CloneColumn duplicates column i directly after itself.
func (m *Manager) CloneColumn(i int) error { return m.cloneLine(colAxis, i) }

// CloneRow duplicates row i directly below itself.
func (m *Manager) CloneRow(i int) error { return m.cloneLine(rowAxis, i) }

// cloneLine duplicates line i. Nodes covering the line grow by one, nodes
// beyond it move forward, and each edge crossing it gains one cell.
func (m *Manager) cloneLine(a axis, i int) error {
	size := m.size(a)
	if i < 0 || i >= size {
		return errs.New(errs.ErrCodeInvalidInput, "%s %d out of range [0, %d)", a, i, size)
	}
	if reason := cloneBlocker(a, a.line(m.Grid(), i)); reason != "" {
		return errs.New(errs.ErrCodeNotClonable, "cannot clone %s: %s", a, reason)
	}

	h, w := m.Size()
	m.height, m.width = h, w
	*m.extent(a)++

	for _, n := range m.nodes {
		start, length := a.span(n)
		switch {
		case *start > i:
			*start++
		case *start+*length > i:
			*length++
		}
	}
	for _, e := range m.edges {
		e.Cells = cloneCells(a, *e, i)
	}

	m.record(EventClone, "cloned %s %d", a, i)
	return nil
}

// cloneCells returns the path of e after duplicating line i. A cell on the
// line gets its copy on the side its forward neighbour lies on.
func cloneCells(a axis, e Edge, i int) []grid.Coordinate {
	prev, next := e.Links()
	fwd := a.forward()
	out := make([]grid.Coordinate, 0, len(e.Cells)+1)
	for j, c := range e.Cells {
		p := a.pos(c)
		switch {
		case p > i:
			out = append(out, a.shift(c, 1))
		case p == i && next[j] == fwd:
			out = append(out, c, a.shift(c, 1))
		case p == i && prev[j] == fwd:
			out = append(out, a.shift(c, 1), c)
		default:
			out = append(out, c)
		}
	}
	return out
}
