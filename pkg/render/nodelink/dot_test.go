package nodelink

import (
	"strings"
	"testing"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

func twoNodes(t *testing.T) *diagram.Manager {
	t.Helper()
	m := diagram.New()
	if err := m.AddNodeAt("a", 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := m.AddNodeAt("b", 2, 3); err != nil {
		t.Fatal(err)
	}
	m.AddRowToEnd()
	_, err := m.DrawEdge(diagram.Route{
		Sender:        "a",
		Receiver:      "b",
		SenderPoint:   grid.At(1, 0),
		ReceiverPoint: grid.At(2, 2),
		ReceiverArrow: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(twoNodes(t), Options{Labels: map[string]string{"a": `say "hi"`}})

	for _, want := range []string{
		"digraph G {",
		`"a" [label="say \"hi\"", pos="0.67,4.67!"];`,
		`"b" [label="b", pos="4.67,2.00!"];`,
		`"a" -> "b" [id="edge-0", arrowtail=none, arrowhead=normal];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTCellSize(t *testing.T) {
	dot := ToDOT(twoNodes(t), Options{CellSize: 24})
	if !strings.Contains(dot, `"a" [label="a", pos="0.50,3.50!"];`) {
		t.Errorf("ToDOT(CellSize=24) did not scale positions:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rewrites header",
			in:   `<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 0"></svg>`,
			want: `<svg viewBox="0 0 0 0"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}
