package grid

import errs "github.com/koljapluemer/canvasgrid/pkg/errors"

// EmptyToken is how an empty cell appears in both text forms.
const EmptyToken = errs.EmptyToken

// CellKind discriminates the variants of a [Cell].
type CellKind uint8

const (
	// KindEmpty is free space. It is the zero value.
	KindEmpty CellKind = iota
	// KindNode is covered by a node rectangle.
	KindNode
	// KindEdge is one step of an edge path.
	KindEdge
)

// String returns "empty", "node" or "edge".
func (k CellKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	}
	return "unknown"
}

// Cell is one unit of a [Grid].
//
// Occupant holds the node or edge id for non-empty cells. The remaining
// fields only carry meaning for edge cells: Prev and Next point toward the
// previous and next step of the path (toward the attached node at either
// end), and the arrow flags mark an arrow head on that side.
type Cell struct {
	Kind     CellKind
	Occupant string

	Prev        Direction
	Next        Direction
	ArrowToPrev bool
	ArrowToNext bool
}

// NodeCell returns a cell covered by node id.
func NodeCell(id string) Cell { return Cell{Kind: KindNode, Occupant: id} }

// EdgeCell returns a path cell of edge id connecting toward prev and next.
func EdgeCell(id string, prev, next Direction, arrowToPrev, arrowToNext bool) Cell {
	return Cell{
		Kind:        KindEdge,
		Occupant:    id,
		Prev:        prev,
		Next:        next,
		ArrowToPrev: arrowToPrev,
		ArrowToNext: arrowToNext,
	}
}

// IsEmpty reports whether the cell is free space.
func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// Links returns the directions an edge cell connects to. It is empty for
// node and empty cells.
func (c Cell) Links() DirectionSet {
	if c.Kind != KindEdge {
		return 0
	}
	return SetOf(c.Prev, c.Next)
}

// Arrows returns the sides of an edge cell that carry an arrow head.
func (c Cell) Arrows() DirectionSet {
	var s DirectionSet
	if c.Kind != KindEdge {
		return s
	}
	if c.ArrowToPrev {
		s = s.With(c.Prev)
	}
	if c.ArrowToNext {
		s = s.With(c.Next)
	}
	return s
}

// HasArrow reports whether the cell carries any arrow head.
func (c Cell) HasArrow() bool { return c.Kind == KindEdge && (c.ArrowToPrev || c.ArrowToNext) }

// Horizontal reports whether the cell is a straight east-west edge segment.
func (c Cell) Horizontal() bool { return c.Links() == SetOf(East, West) }

// Vertical reports whether the cell is a straight north-south edge segment.
func (c Cell) Vertical() bool { return c.Links() == SetOf(North, South) }

// Token returns the structural text token: the occupant id, or "·".
func (c Cell) Token() string {
	if c.Kind == KindEmpty {
		return EmptyToken
	}
	return c.Occupant
}

// Glyph returns the flow rendering of the cell. Node cells render their id.
func (c Cell) Glyph() string {
	switch c.Kind {
	case KindNode:
		return c.Occupant
	case KindEdge:
		return Glyph(c.Links(), c.Arrows())
	}
	return EmptyToken
}
