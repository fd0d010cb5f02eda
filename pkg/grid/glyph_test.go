package grid

import "testing"

func TestGlyph(t *testing.T) {
	tests := []struct {
		name   string
		links  DirectionSet
		arrows DirectionSet
		want   string
	}{
		{"none", 0, 0, "·"},
		{"single", SetOf(North), 0, "·"},

		{"vertical", SetOf(North, South), 0, "│"},
		{"horizontal", SetOf(East, West), 0, "─"},
		{"north east", SetOf(North, East), 0, "└"},
		{"north west", SetOf(North, West), 0, "┘"},
		{"south east", SetOf(South, East), 0, "┌"},
		{"south west", SetOf(South, West), 0, "┐"},
		{"tee east", SetOf(North, South, East), 0, "├"},
		{"tee west", SetOf(North, South, West), 0, "┤"},
		{"tee south", SetOf(East, West, South), 0, "┬"},
		{"tee north", SetOf(East, West, North), 0, "┴"},
		{"cross", SetOf(North, East, South, West), 0, "┼"},

		{"arrow up", SetOf(North, South), SetOf(North), "↑"},
		{"arrow down", SetOf(North, South), SetOf(South), "↓"},
		{"arrow both vertical", SetOf(North, South), SetOf(North, South), "↕"},
		{"arrow right", SetOf(East, West), SetOf(East), "→"},
		{"arrow left", SetOf(East, West), SetOf(West), "←"},
		{"arrow both horizontal", SetOf(East, West), SetOf(East, West), "↔"},

		{"└ N", SetOf(North, East), SetOf(North), "⬑"},
		{"└ E", SetOf(North, East), SetOf(East), "⬏"},
		{"┘ N", SetOf(North, West), SetOf(North), "⬏"},
		{"┘ W", SetOf(North, West), SetOf(West), "⬑"},
		{"┌ S", SetOf(South, East), SetOf(South), "⬏"},
		{"┌ E", SetOf(South, East), SetOf(East), "⬑"},
		{"┐ S", SetOf(South, West), SetOf(South), "⬑"},
		{"┐ W", SetOf(South, West), SetOf(West), "⬏"},

		{"corner both arrows", SetOf(North, East), SetOf(North, East), "⬑"},
		{"arrow off link", SetOf(North, South), SetOf(East), "│"},
		{"tee with arrow", SetOf(North, South, East), SetOf(East), "├"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Glyph(tt.links, tt.arrows); got != tt.want {
				t.Errorf("Glyph(%v, %v) = %q, want %q", tt.links, tt.arrows, got, tt.want)
			}
		})
	}
}

func TestCellGlyph(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"empty", Cell{}, "·"},
		{"node", NodeCell("a"), "a"},
		{"edge straight", EdgeCell("0", West, East, false, false), "─"},
		{"edge arrow to prev", EdgeCell("0", North, South, true, false), "↑"},
		{"edge arrow to next", EdgeCell("0", North, West, false, true), "⬑"},
	}
	for _, tt := range tests {
		if got := tt.cell.Glyph(); got != tt.want {
			t.Errorf("%s: Glyph() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCellAccessors(t *testing.T) {
	c := EdgeCell("3", South, North, false, true)
	if !c.Vertical() || c.Horizontal() {
		t.Errorf("Vertical = %v, Horizontal = %v, want true, false", c.Vertical(), c.Horizontal())
	}
	if !c.HasArrow() {
		t.Error("HasArrow = false, want true")
	}
	if got := c.Arrows(); got != SetOf(North) {
		t.Errorf("Arrows = %v, want N", got)
	}
	if got := c.Token(); got != "3" {
		t.Errorf("Token = %q, want %q", got, "3")
	}
	if NodeCell("a").Links() != 0 {
		t.Error("node cell has links")
	}
	if NodeCell("a").HasArrow() {
		t.Error("node cell has arrow")
	}
}
