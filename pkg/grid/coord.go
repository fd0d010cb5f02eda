package grid

import (
	"fmt"
	"math/bits"
	"strings"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
)

// Coordinate addresses a cell by row and column. Coordinates outside a grid
// are valid values; bounds are checked by the [Grid] that evaluates them.
type Coordinate struct {
	Row int
	Col int
}

// At is shorthand for Coordinate{Row: row, Col: col}.
func At(row, col int) Coordinate { return Coordinate{Row: row, Col: col} }

// String returns "(row,col)".
func (c Coordinate) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Step returns the coordinate one cell away in direction d.
func (c Coordinate) Step(d Direction) Coordinate {
	dr, dc := d.Delta()
	return Coordinate{Row: c.Row + dr, Col: c.Col + dc}
}

// DirectionTo reports the direction from c to an orthogonally adjacent
// coordinate o. It returns false when o is not adjacent.
func (c Coordinate) DirectionTo(o Coordinate) (Direction, bool) {
	switch {
	case o.Row == c.Row-1 && o.Col == c.Col:
		return North, true
	case o.Row == c.Row && o.Col == c.Col+1:
		return East, true
	case o.Row == c.Row+1 && o.Col == c.Col:
		return South, true
	case o.Row == c.Row && o.Col == c.Col-1:
		return West, true
	}
	return North, false
}

// Adjacent reports whether o is one orthogonal step away from c.
func (c Coordinate) Adjacent(o Coordinate) bool {
	_, ok := c.DirectionTo(o)
	return ok
}

// Manhattan returns the taxicab distance between c and o.
func (c Coordinate) Manhattan(o Coordinate) int {
	return abs(c.Row-o.Row) + abs(c.Col-o.Col)
}

// Neighbors8 returns the eight coordinates surrounding c, row-major.
func (c Coordinate) Neighbors8() [8]Coordinate {
	var out [8]Coordinate
	i := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			out[i] = Coordinate{Row: c.Row + dr, Col: c.Col + dc}
			i++
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is a compass direction on the grid. North is row-1, East is col+1.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all four directions in clockwise order starting at North.
var Directions = [4]Direction{North, East, South, West}

// routeOrder is the neighbour expansion order of the path search.
var routeOrder = [4]Direction{East, South, West, North}

var directionNames = [4]string{"N", "E", "S", "W"}

// String returns the single-letter name ("N", "E", "S", "W").
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Valid reports whether d is one of the four compass directions.
func (d Direction) Valid() bool { return d <= West }

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// Vertical reports whether d is North or South.
func (d Direction) Vertical() bool { return d == North || d == South }

// Delta returns the row and column offset of one step in direction d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	return 0, 0
}

// ParseDirection parses "N", "E", "S", "W" or the full compass names,
// case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return North, errs.New(errs.ErrCodeInvalidInput, "invalid direction: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errs.New(errs.ErrCodeInvalidInput, "invalid direction: %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DirectionSet is a set of directions stored as a bitmask.
type DirectionSet uint8

// SetOf returns the set containing ds.
func SetOf(ds ...Direction) DirectionSet {
	var s DirectionSet
	for _, d := range ds {
		s = s.With(d)
	}
	return s
}

// With returns s with d added.
func (s DirectionSet) With(d Direction) DirectionSet { return s | 1<<d }

// Has reports whether d is in s.
func (s DirectionSet) Has(d Direction) bool { return s&(1<<d) != 0 }

// Len returns the number of directions in s.
func (s DirectionSet) Len() int { return bits.OnesCount8(uint8(s)) }

// String lists the members in N, E, S, W order, e.g. "NS".
func (s DirectionSet) String() string {
	var b strings.Builder
	for _, d := range Directions {
		if s.Has(d) {
			b.WriteString(d.String())
		}
	}
	return b.String()
}
