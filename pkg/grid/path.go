package grid

// FindPathWithForcedEnds routes a Manhattan path from start to end.
//
// The first move leaves start in startDir and the last move enters end from
// the cell end.Step(endDir). Both of those cells must be in bounds and empty.
// Between them a breadth-first search over empty cells finds a shortest
// route, expanding neighbours in the order E, S, W, N. start and end are
// never revisited.
//
// The result is [start, first, ..., preEnd, end], collapsing to
// [start, first, end] when first and preEnd coincide. It is nil when no
// such path exists or when start equals end.
func (g *Grid) FindPathWithForcedEnds(start, end Coordinate, startDir, endDir Direction) []Coordinate {
	if start == end {
		return nil
	}
	blocked := func(c Coordinate) bool {
		return c == start || c == end || !g.IsCellEmpty(c)
	}

	first := start.Step(startDir)
	preEnd := end.Step(endDir)
	if blocked(first) || blocked(preEnd) {
		return nil
	}

	middle := g.shortestPath(first, preEnd, blocked)
	if middle == nil {
		return nil
	}

	path := make([]Coordinate, 0, len(middle)+2)
	path = append(path, start)
	path = append(path, middle...)
	return append(path, end)
}

// shortestPath runs a breadth-first search from one in-bounds cell to
// another and returns the visited cells including both ends.
func (g *Grid) shortestPath(from, to Coordinate, blocked func(Coordinate) bool) []Coordinate {
	if from == to {
		return []Coordinate{from}
	}

	index := func(c Coordinate) int { return c.Row*g.width + c.Col }
	parent := make([]int, g.height*g.width)
	seen := make([]bool, g.height*g.width)
	seen[index(from)] = true

	queue := []Coordinate{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range routeOrder {
			next := cur.Step(d)
			if !g.InBounds(next) || seen[index(next)] || blocked(next) {
				continue
			}
			seen[index(next)] = true
			parent[index(next)] = index(cur)
			if next == to {
				return g.trace(parent, index(from), index(to))
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func (g *Grid) trace(parent []int, from, to int) []Coordinate {
	var rev []Coordinate
	for i := to; ; i = parent[i] {
		rev = append(rev, Coordinate{Row: i / g.width, Col: i % g.width})
		if i == from {
			break
		}
	}
	path := make([]Coordinate, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}
