package grid

import (
	"math/rand/v2"
	"reflect"
	"testing"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
)

func mustParse(t *testing.T, s string) *Grid {
	t.Helper()
	g, err := ParseText(s)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	return g
}

func TestNew(t *testing.T) {
	g := New(2, 3)
	if g.Height() != 2 || g.Width() != 3 {
		t.Errorf("size = %dx%d, want 2x3", g.Height(), g.Width())
	}
	if err := g.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
	if got := len(g.EmptyCells()); got != 6 {
		t.Errorf("EmptyCells() = %d cells, want 6", got)
	}

	neg := New(-1, 4)
	if neg.Height() != 0 || neg.Width() != 4 {
		t.Errorf("New(-1, 4) size = %dx%d, want 0x4", neg.Height(), neg.Width())
	}
}

func TestOneByOne(t *testing.T) {
	if got := OneByOne().Text(); got != "·" {
		t.Errorf("OneByOne().Text() = %q, want %q", got, "·")
	}
}

func TestIsCellEmpty(t *testing.T) {
	g := mustParse(t, "a ·\n· ·")
	tests := []struct {
		c            Coordinate
		empty        bool
		emptyOrOutOf bool
	}{
		{At(0, 0), false, false},
		{At(0, 1), true, true},
		{At(-1, 0), false, true},
		{At(0, 2), false, true},
		{At(2, 0), false, true},
	}
	for _, tt := range tests {
		if got := g.IsCellEmpty(tt.c); got != tt.empty {
			t.Errorf("IsCellEmpty(%v) = %v, want %v", tt.c, got, tt.empty)
		}
		if got := g.IsCellEmptyOrOutOfBounds(tt.c); got != tt.emptyOrOutOf {
			t.Errorf("IsCellEmptyOrOutOfBounds(%v) = %v, want %v", tt.c, got, tt.emptyOrOutOf)
		}
	}
}

func TestValidNodePlacementCells(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Coordinate
	}{
		{"single empty", "·", []Coordinate{At(0, 0)}},
		{"full", "a", nil},
		{"one spot", "a · b\n· · ·\nc · ·", []Coordinate{At(2, 2)}},
		{"diagonal blocks", "a · ·\n· · ·\n· · ·", []Coordinate{At(0, 2), At(2, 0), At(2, 1), At(2, 2), At(1, 2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.text).ValidNodePlacementCells()
			want := sortRowMajor(tt.want)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ValidNodePlacementCells() = %v, want %v", got, want)
			}
		})
	}
}

func sortRowMajor(cs []Coordinate) []Coordinate {
	if cs == nil {
		return nil
	}
	out := append([]Coordinate(nil), cs...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && (out[j].Row < out[j-1].Row || out[j].Row == out[j-1].Row && out[j].Col < out[j-1].Col); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func TestRandomValidNodePlacementCell(t *testing.T) {
	g := mustParse(t, "a · b\n· · ·\nc · ·")
	c, ok := g.RandomValidNodePlacementCell(rand.New(rand.NewPCG(1, 2)))
	if !ok || c != At(2, 2) {
		t.Errorf("RandomValidNodePlacementCell() = %v, %v, want (2,2), true", c, ok)
	}
	if _, ok := mustParse(t, "a").RandomValidNodePlacementCell(nil); ok {
		t.Error("RandomValidNodePlacementCell() on full grid ok = true, want false")
	}

	open := New(4, 4)
	seen := map[Coordinate]bool{}
	rng := rand.New(rand.NewPCG(7, 7))
	for range 200 {
		c, ok := open.RandomValidNodePlacementCell(rng)
		if !ok || !open.IsCellEmpty(c) {
			t.Fatalf("RandomValidNodePlacementCell() = %v, %v", c, ok)
		}
		seen[c] = true
	}
	if len(seen) < 2 {
		t.Errorf("200 draws hit %d distinct cells, want more than 1", len(seen))
	}
}

func TestAddRowAndColToEnd(t *testing.T) {
	g := mustParse(t, "a")
	g.AddRowToEnd()
	g.AddColToEnd()
	if g.Height() != 2 || g.Width() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", g.Height(), g.Width())
	}
	if got, want := g.Text(), "a ·\n· ·"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if err := g.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestCheckDetectsRaggedRows(t *testing.T) {
	g := New(2, 2)
	g.cells[1] = g.cells[1][:1]
	err := g.Check()
	if !errs.Is(err, errs.ErrCodeGridIntegrity) {
		t.Errorf("Check() = %v, want GRID_INTEGRITY", err)
	}
}

func TestRowAndColumnAreCopies(t *testing.T) {
	g := mustParse(t, "a b\nc d")
	row := g.Row(0)
	row[0] = Cell{}
	if got, _ := g.At(At(0, 0)); got.Occupant != "a" {
		t.Errorf("Row() aliases grid storage")
	}
	col := g.Column(1)
	if col[0].Occupant != "b" || col[1].Occupant != "d" {
		t.Errorf("Column(1) = %v", col)
	}
	if g.Row(5) != nil || g.Column(-1) != nil {
		t.Error("out of range line is not nil")
	}
}

func TestEqual(t *testing.T) {
	a := mustParse(t, "a ·\n· b")
	b := mustParse(t, "a ·\n· b")
	if !a.Equal(b) {
		t.Error("Equal() = false for identical grids")
	}
	b.Set(At(0, 1), NodeCell("x"))
	if a.Equal(b) {
		t.Error("Equal() = true for different grids")
	}
	if a.Equal(New(2, 3)) {
		t.Error("Equal() = true for different sizes")
	}
}
