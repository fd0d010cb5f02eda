package grid

var (
	vertical   = SetOf(North, South)
	horizontal = SetOf(East, West)
)

// baseGlyphs maps a connection set to its box-drawing character.
var baseGlyphs = map[DirectionSet]string{
	vertical:                        "│",
	horizontal:                      "─",
	SetOf(North, East):              "└",
	SetOf(North, West):              "┘",
	SetOf(South, East):              "┌",
	SetOf(South, West):              "┐",
	SetOf(North, South, East):       "├",
	SetOf(North, South, West):       "┤",
	SetOf(East, West, South):        "┬",
	SetOf(East, West, North):        "┴",
	SetOf(North, East, South, West): "┼",
}

var straightArrows = map[Direction]string{
	North: "↑",
	South: "↓",
	East:  "→",
	West:  "←",
}

type cornerArrow struct {
	side  Direction
	glyph string
}

// cornerArrows lists, per corner, the glyph for each arrowed side. The
// vertical side comes first and wins when both sides carry an arrow.
var cornerArrows = map[DirectionSet][2]cornerArrow{
	SetOf(North, East): {{North, "⬑"}, {East, "⬏"}},
	SetOf(North, West): {{North, "⬏"}, {West, "⬑"}},
	SetOf(South, East): {{South, "⬏"}, {East, "⬑"}},
	SetOf(South, West): {{South, "⬑"}, {West, "⬏"}},
}

// Glyph returns the flow glyph for an edge cell with the given connections
// and arrowed sides. Arrows on sides without a connection are ignored. A
// connection set with no glyph (zero or one direction) renders as "·".
func Glyph(links, arrows DirectionSet) string {
	base, ok := baseGlyphs[links]
	if !ok {
		return EmptyToken
	}
	arrows &= links
	if arrows == 0 {
		return base
	}

	switch links {
	case vertical:
		if arrows == vertical {
			return "↕"
		}
		if arrows.Has(North) {
			return straightArrows[North]
		}
		return straightArrows[South]
	case horizontal:
		if arrows == horizontal {
			return "↔"
		}
		if arrows.Has(East) {
			return straightArrows[East]
		}
		return straightArrows[West]
	}

	if corner, ok := cornerArrows[links]; ok {
		for _, ca := range corner {
			if arrows.Has(ca.side) {
				return ca.glyph
			}
		}
	}
	return base
}
