package layout

import (
	"slices"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// A lattice refines a grid of h x w cells into (2h+1) x (2w+1) points.
// Cell (r, c) sits at point (2r+1, 2c+1). A point with one even coordinate
// is the border between two neighbouring cells, and a point with two even
// coordinates is a corner where four cells meet. The outer ring lies
// outside the grid.
//
// A cell point is open when the cell is empty. A border is closed when its
// two cells belong together: both cover the same node, or an edge path
// steps across it. A corner is closed when all four borders around it are.
//
// A corridor is a path of open points from a free border of one node to a
// free border of another. Once empty lines are inserted along the
// corridor, see [builder.widen], an edge can be drawn through it.
type lattice struct {
	g          *grid.Grid
	rows, cols int
}

type point struct{ i, j int }

func newLattice(g *grid.Grid) *lattice {
	return &lattice{g: g, rows: 2*g.Height() + 1, cols: 2*g.Width() + 1}
}

func cellPoint(c grid.Coordinate) point { return point{2*c.Row + 1, 2*c.Col + 1} }

func (p point) step(d grid.Direction) point {
	dr, dc := d.Delta()
	return point{p.i + dr, p.j + dc}
}

func (l *lattice) inside(p point) bool {
	return p.i >= 0 && p.j >= 0 && p.i < l.rows && p.j < l.cols
}

func (l *lattice) open(p point) bool {
	switch {
	case p.i%2 == 1 && p.j%2 == 1:
		return l.g.IsCellEmpty(grid.At(p.i/2, p.j/2))
	case p.i%2 == 1:
		return !l.joined(grid.At(p.i/2, p.j/2-1), grid.East)
	case p.j%2 == 1:
		return !l.joined(grid.At(p.i/2-1, p.j/2), grid.South)
	}
	for _, d := range grid.Directions {
		if q := p.step(d); !l.inside(q) || l.open(q) {
			return true
		}
	}
	return false
}

// joined reports whether the cell at a and its neighbour in direction d
// belong together.
func (l *lattice) joined(a grid.Coordinate, d grid.Direction) bool {
	ca, okA := l.g.At(a)
	cb, okB := l.g.At(a.Step(d))
	if !okA || !okB {
		return false
	}
	switch {
	case ca.Kind == grid.KindNode && cb.Kind == grid.KindNode:
		return ca.Occupant == cb.Occupant
	case ca.Kind == grid.KindEdge && ca.Links().Has(d):
		return true
	case cb.Kind == grid.KindEdge && cb.Links().Has(d.Opposite()):
		return true
	}
	return false
}

// side is an open border of a node and the side of the node it lies on.
type side struct {
	at  point
	dir grid.Direction
}

func (l *lattice) sides(n diagram.Node) []side {
	var out []side
	for _, c := range n.Cells() {
		for _, d := range grid.Directions {
			if n.Contains(c.Step(d)) {
				continue
			}
			if p := cellPoint(c).step(d); l.open(p) {
				out = append(out, side{p, d})
			}
		}
	}
	return out
}

type corridor struct {
	path     []point
	from, to grid.Direction
}

// corridor finds a shortest corridor from u to v. A node connected to
// itself needs two different borders.
func (l *lattice) corridor(u, v diagram.Node) (corridor, bool) {
	starts, targets := l.sides(u), l.sides(v)
	if u.ID != v.ID {
		return l.search(starts, targets)
	}
	for i, s := range starts {
		others := slices.Delete(slices.Clone(targets), i, i+1)
		if c, ok := l.search([]side{s}, others); ok {
			return c, true
		}
	}
	return corridor{}, false
}

func (l *lattice) search(starts, targets []side) (corridor, bool) {
	goal := make(map[point]grid.Direction, len(targets))
	for _, t := range targets {
		goal[t.at] = t.dir
	}
	parent := make(map[point]point)
	origin := make(map[point]grid.Direction, len(starts))
	queue := make([]point, 0, len(starts))
	for _, s := range starts {
		if _, seen := parent[s.at]; seen {
			continue
		}
		parent[s.at] = s.at
		origin[s.at] = s.dir
		queue = append(queue, s.at)
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if dir, ok := goal[p]; ok {
			path := []point{p}
			for q := p; parent[q] != q; q = parent[q] {
				path = append(path, parent[q])
			}
			slices.Reverse(path)
			return corridor{path: path, from: origin[path[0]], to: dir}, true
		}
		for _, d := range grid.Directions {
			q := p.step(d)
			if _, seen := parent[q]; seen || !l.inside(q) || !l.open(q) {
				continue
			}
			parent[q] = p
			queue = append(queue, q)
		}
	}
	return corridor{}, false
}

// lines returns how many empty rows and columns to insert before each
// index so that the corridor becomes a drawable path. A run along a border
// needs one line. Each end needs two: the attachment point and the cell
// behind it.
func (c corridor) lines() (rows, cols map[int]int) {
	rows, cols = make(map[int]int), make(map[int]int)
	for k := 1; k < len(c.path); k++ {
		p, q := c.path[k-1], c.path[k]
		if p.i == q.i && p.i%2 == 0 {
			rows[p.i/2] = 1
		}
		if p.j == q.j && p.j%2 == 0 {
			cols[p.j/2] = 1
		}
	}
	end := func(p point, d grid.Direction) {
		if d.Vertical() {
			rows[p.i/2] += 2
		} else {
			cols[p.j/2] += 2
		}
	}
	end(c.path[0], c.from)
	end(c.path[len(c.path)-1], c.to)
	return rows, cols
}

// corridorOn looks for a corridor for r in the current diagram of m.
func corridorOn(m *diagram.Manager, r edgeRoute) (corridor, bool) {
	from, ok := m.Node(r.from)
	if !ok {
		return corridor{}, false
	}
	to, ok := m.Node(r.to)
	if !ok {
		return corridor{}, false
	}
	return newLattice(m.Grid()).corridor(from, to)
}
