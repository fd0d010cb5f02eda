package grid

import (
	"strings"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
)

// Text returns the structural form: one line per row, tokens separated by a
// single space, "·" for empty cells and the occupant id otherwise. There is
// no trailing newline.
func (g *Grid) Text() string {
	return g.join(Cell.Token)
}

// Flow returns the grid with every cell replaced by its glyph.
func (g *Grid) Flow() string {
	return g.join(Cell.Glyph)
}

// String returns [Grid.Text].
func (g *Grid) String() string { return g.Text() }

func (g *Grid) join(render func(Cell) string) string {
	var b strings.Builder
	for r, row := range g.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(render(cell))
		}
	}
	return b.String()
}

// ParseText reads a structural form back into a grid. Blank lines are
// ignored. Every occupied token becomes a node cell, since the structural
// form carries no edge directions. Rows of differing length are a
// GRID_INTEGRITY error.
func ParseText(s string) (*Grid, error) {
	var rows [][]string
	for _, line := range strings.Split(s, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	if len(rows) == 0 {
		return New(0, 0), nil
	}

	width := len(rows[0])
	g := New(len(rows), width)
	for r, fields := range rows {
		if len(fields) != width {
			return nil, errs.New(errs.ErrCodeGridIntegrity, "row %d has %d cells, want %d", r, len(fields), width)
		}
		for c, tok := range fields {
			if tok != EmptyToken {
				g.cells[r][c] = NodeCell(tok)
			}
		}
	}
	return g, nil
}
