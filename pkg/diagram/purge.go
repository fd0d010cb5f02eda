package diagram

import (
	"slices"

	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// PurgeRedundantColumns deletes empty columns and then columns identical by
// occupant id to their left neighbour, scanning from the right. Deletions
// that would break an edge are skipped and the last column is never removed.
// It returns the number of columns removed.
func (m *Manager) PurgeRedundantColumns() int { return m.purge(colAxis) }

// PurgeRedundantRows is [Manager.PurgeRedundantColumns] for rows, scanning
// from the bottom.
func (m *Manager) PurgeRedundantRows() int { return m.purge(rowAxis) }

func (m *Manager) purge(a axis) int {
	removed := 0
	for i := m.size(a) - 1; i >= 0; i-- {
		if m.size(a) > 1 && isEmptyLine(a.line(m.Grid(), i)) && m.tryDeleteLine(a, i) {
			removed++
		}
	}
	for i := m.size(a) - 1; i >= 1; i-- {
		g := m.Grid()
		if slices.Equal(tokens(a.line(g, i)), tokens(a.line(g, i-1))) && m.tryDeleteLine(a, i) {
			removed++
		}
	}
	if removed > 0 {
		m.record(EventPurge, "purged %d redundant %ss", removed, a)
	}
	return removed
}

func isEmptyLine(line []grid.Cell) bool {
	for _, c := range line {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

func tokens(line []grid.Cell) []string {
	out := make([]string, len(line))
	for i, c := range line {
		out[i] = c.Token()
	}
	return out
}

// tryDeleteLine deletes line i on a copy and adopts the result only if the
// copy still validates.
func (m *Manager) tryDeleteLine(a axis, i int) bool {
	c := m.Clone()
	c.rec = nil
	if !c.deleteLine(a, i) || c.Validate() != nil {
		return false
	}
	m.nodes, m.edges = c.nodes, c.edges
	m.height, m.width = c.height, c.width
	return true
}

// deleteLine removes line i: nodes covering it shrink, path cells on it are
// dropped and everything beyond moves back. It reports false when a node
// would vanish or an edge would lose every cell.
func (m *Manager) deleteLine(a axis, i int) bool {
	h, w := m.Size()
	m.height, m.width = h, w
	*m.extent(a)--

	for _, n := range m.nodes {
		start, length := a.span(n)
		switch {
		case *start > i:
			*start--
		case *start+*length > i:
			if *length == 1 {
				return false
			}
			*length--
		}
	}
	for _, e := range m.edges {
		kept := e.Cells[:0]
		for _, c := range e.Cells {
			switch p := a.pos(c); {
			case p > i:
				kept = append(kept, a.shift(c, -1))
			case p < i:
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			return false
		}
		e.Cells = kept
	}
	return true
}
