package grid

import (
	"testing"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
)

func TestTextRoundTrip(t *testing.T) {
	tests := []string{
		"·",
		"a",
		"a a · b b b\na a 1 1 1 1\n· 0 · · · 1\n· 0 0 0 · 1\n· · · c c 1",
		"aa · 12\n· · ·",
	}
	for _, text := range tests {
		g, err := ParseText(text)
		if err != nil {
			t.Fatalf("ParseText(%q): %v", text, err)
		}
		if got := g.Text(); got != text {
			t.Errorf("Text(ParseText(%q)) = %q", text, got)
		}
		again, err := ParseText(g.Text())
		if err != nil {
			t.Fatalf("ParseText(Text()): %v", err)
		}
		if !again.Equal(g) {
			t.Errorf("second round trip of %q differs", text)
		}
	}
}

func TestParseTextWhitespace(t *testing.T) {
	g, err := ParseText("\n  a   ·\n\n· b  \n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if got, want := g.Text(), "a ·\n· b"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if cell, _ := g.At(At(1, 1)); cell.Kind != KindNode || cell.Occupant != "b" {
		t.Errorf("cell (1,1) = %+v, want node b", cell)
	}
}

func TestParseTextEmpty(t *testing.T) {
	g, err := ParseText("  \n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if g.Height() != 0 || g.Width() != 0 {
		t.Errorf("size = %dx%d, want 0x0", g.Height(), g.Width())
	}
}

func TestParseTextRagged(t *testing.T) {
	_, err := ParseText("a b\nc")
	if !errs.Is(err, errs.ErrCodeGridIntegrity) {
		t.Errorf("ParseText(ragged) error = %v, want GRID_INTEGRITY", err)
	}
}

func TestFlow(t *testing.T) {
	g := New(3, 3)
	g.Set(At(0, 0), NodeCell("a"))
	g.Set(At(0, 1), EdgeCell("0", West, East, false, false))
	g.Set(At(0, 2), EdgeCell("0", West, South, false, false))
	g.Set(At(1, 2), EdgeCell("0", North, South, false, true))
	g.Set(At(2, 2), NodeCell("b"))

	if got, want := g.Flow(), "a ─ ┐\n· · ↓\n· · b"; got != want {
		t.Errorf("Flow() = %q, want %q", got, want)
	}
	if got, want := g.Text(), "a 0 0\n· · 0\n· · b"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}
