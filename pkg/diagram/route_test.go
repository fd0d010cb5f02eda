package diagram

import (
	"reflect"
	"testing"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// routeFixture has b on top, c at the bottom and a wide node a in between.
func routeFixture(t *testing.T) *Manager {
	t.Helper()
	m := New()
	mustAddNode(t, m, Node{ID: "b", Row: 0, Col: 4, Width: 3, Height: 1})
	mustAddNode(t, m, Node{ID: "c", Row: 7, Col: 4, Width: 3, Height: 1})
	mustAddNode(t, m, Node{ID: "a", Row: 3, Col: 2, Width: 5, Height: 1})
	m.AddColToEnd()
	if h, w := m.Size(); h != 8 || w != 8 {
		t.Fatalf("Size() = %d, %d, want 8, 8", h, w)
	}
	return m
}

func TestDrawEdge(t *testing.T) {
	m := routeFixture(t)
	b, _ := m.Node("b")
	c, _ := m.Node("c")
	if !contains(m.ValidAttachmentPoints(b), grid.At(1, 5)) {
		t.Fatalf("(1,5) is not an attachment point of b")
	}
	if !contains(m.ValidAttachmentPoints(c), grid.At(6, 5)) {
		t.Fatalf("(6,5) is not an attachment point of c")
	}

	e, err := m.DrawEdge(Route{
		Sender:        "b",
		Receiver:      "c",
		SenderPoint:   grid.At(1, 5),
		ReceiverPoint: grid.At(6, 5),
		ReceiverArrow: true,
	})
	if err != nil {
		t.Fatalf("DrawEdge: %v", err)
	}

	wantEdge := Edge{
		ID:       "0",
		Sender:   Attachment{NodeID: "b", Direction: grid.North},
		Receiver: Attachment{NodeID: "c", Direction: grid.South, HasArrow: true},
		Cells: []grid.Coordinate{
			grid.At(1, 5), grid.At(2, 5), grid.At(2, 6), grid.At(2, 7), grid.At(3, 7),
			grid.At(4, 7), grid.At(5, 7), grid.At(5, 6), grid.At(5, 5), grid.At(6, 5),
		},
	}
	if !reflect.DeepEqual(e, wantEdge) {
		t.Errorf("DrawEdge() = %+v, want %+v", e, wantEdge)
	}
	if got, want := m.Text(), golden(t, "route.txt"); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
	if got, want := m.Flow(), golden(t, "route.flow.txt"); got != want {
		t.Errorf("Flow() =\n%s\nwant\n%s", got, want)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDrawEdgeSequentialNoOverlap(t *testing.T) {
	m := routeFixture(t)
	routes := []Route{
		{Sender: "b", Receiver: "c", SenderPoint: grid.At(1, 5), ReceiverPoint: grid.At(6, 5)},
		{Sender: "b", Receiver: "c", SenderPoint: grid.At(0, 3), ReceiverPoint: grid.At(7, 3)},
	}
	seen := map[grid.Coordinate]string{}
	for _, r := range routes {
		e, err := m.DrawEdge(r)
		if err != nil {
			t.Fatalf("DrawEdge(%+v): %v", r, err)
		}
		for _, c := range e.Cells {
			if other, ok := seen[c]; ok {
				t.Errorf("edge %s reuses cell %v of edge %s", e.ID, c, other)
			}
			seen[c] = e.ID
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if _, ok := m.Edge("1"); !ok {
		t.Error("second edge is not named 1")
	}
}

func TestDrawEdgeSkipsTakenIDs(t *testing.T) {
	m := New()
	mustAddNode(t, m, Node{ID: "0", Row: 0, Col: 0, Width: 1, Height: 1})
	mustAddNode(t, m, Node{ID: "x", Row: 0, Col: 4, Width: 1, Height: 1})
	e, err := m.DrawEdge(Route{Sender: "0", Receiver: "x", SenderPoint: grid.At(0, 1), ReceiverPoint: grid.At(0, 3)})
	if err != nil {
		t.Fatalf("DrawEdge: %v", err)
	}
	if e.ID != "1" {
		t.Errorf("edge id = %q, want %q", e.ID, "1")
	}
	if got, want := m.Text(), "0 1 1 1 x"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestDrawEdgeErrors(t *testing.T) {
	tests := []struct {
		name  string
		route Route
		code  errs.Code
	}{
		{"unknown sender", Route{Sender: "z", Receiver: "b", SenderPoint: grid.At(0, 1), ReceiverPoint: grid.At(0, 1)}, errs.ErrCodeNotFound},
		{"unknown receiver", Route{Sender: "a", Receiver: "z", SenderPoint: grid.At(0, 1), ReceiverPoint: grid.At(0, 1)}, errs.ErrCodeNotFound},
		{"point not touching", Route{Sender: "a", Receiver: "b", SenderPoint: grid.At(1, 1), ReceiverPoint: grid.At(0, 1)}, errs.ErrCodeInvalidInput},
		{"no breathing space", Route{Sender: "a", Receiver: "b", SenderPoint: grid.At(0, 1), ReceiverPoint: grid.At(0, 1)}, errs.ErrCodeNoRoute},
		{"occupied point", Route{Sender: "a", Receiver: "b", SenderPoint: grid.At(1, 0), ReceiverPoint: grid.At(1, 2)}, errs.ErrCodeNoRoute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			mustAddNode(t, m, Node{ID: "a", Row: 0, Col: 0, Width: 1, Height: 1})
			mustAddNode(t, m, Node{ID: "b", Row: 0, Col: 2, Width: 1, Height: 1})
			mustAddNode(t, m, Node{ID: "w", Row: 1, Col: 0, Width: 3, Height: 1})
			_, err := m.DrawEdge(tt.route)
			if !errs.Is(err, tt.code) {
				t.Errorf("DrawEdge() error = %v, want %s", err, tt.code)
			}
			if len(m.Edges()) != 0 {
				t.Error("failed DrawEdge added an edge")
			}
		})
	}
}

func contains(cs []grid.Coordinate, c grid.Coordinate) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}
