package diagram

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

func golden(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return strings.TrimRight(string(b), "\n")
}

func mustAddNode(t *testing.T, m *Manager, n Node) {
	t.Helper()
	if err := m.AddNode(n); err != nil {
		t.Fatalf("AddNode(%+v): %v", n, err)
	}
}

// simpleGrid builds the 5x6 fixture with nodes a, b, c and edges 0 and 1.
// edit may adjust the edges before they are added.
func simpleGrid(t *testing.T, edit func(edges []Edge)) *Manager {
	t.Helper()
	m := New(WithSeed(1))
	mustAddNode(t, m, Node{ID: "a", Row: 0, Col: 0, Width: 2, Height: 2})
	mustAddNode(t, m, Node{ID: "b", Row: 0, Col: 3, Width: 3, Height: 1})
	mustAddNode(t, m, Node{ID: "c", Row: 4, Col: 3, Width: 2, Height: 1})
	edges := []Edge{
		{
			ID:       "0",
			Sender:   Attachment{NodeID: "a", Direction: grid.North},
			Receiver: Attachment{NodeID: "c", Direction: grid.South},
			Cells:    []grid.Coordinate{grid.At(2, 1), grid.At(3, 1), grid.At(3, 2), grid.At(3, 3)},
		},
		{
			ID:       "1",
			Sender:   Attachment{NodeID: "a", Direction: grid.West},
			Receiver: Attachment{NodeID: "c", Direction: grid.West},
			Cells: []grid.Coordinate{
				grid.At(1, 2), grid.At(1, 3), grid.At(1, 4), grid.At(1, 5),
				grid.At(2, 5), grid.At(3, 5), grid.At(4, 5),
			},
		},
	}
	if edit != nil {
		edit(edges)
	}
	for _, e := range edges {
		if err := m.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s): %v", e.ID, err)
		}
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}
	return m
}

func TestOneByOne(t *testing.T) {
	m := New()
	if got := m.Text(); got != "·" {
		t.Errorf("Text() = %q, want %q", got, "·")
	}
	if h, w := m.NeededGridFormat(); h != 1 || w != 1 {
		t.Errorf("NeededGridFormat() = %d, %d, want 1, 1", h, w)
	}
}

func TestSimpleGrid(t *testing.T) {
	m := simpleGrid(t, nil)

	if h, w := m.NeededGridFormat(); h != 5 || w != 6 {
		t.Errorf("NeededGridFormat() = %d, %d, want 5, 6", h, w)
	}
	if got := len(m.Grid().EmptyCells()); got != 10 {
		t.Errorf("EmptyCells() = %d cells, want 10", got)
	}
	if got, want := m.Text(), golden(t, "simplegrid.txt"); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
	if got, want := m.Flow(), golden(t, "simplegrid.flow.txt"); got != want {
		t.Errorf("Flow() =\n%s\nwant\n%s", got, want)
	}
}

func TestSimpleGridArrows(t *testing.T) {
	m := simpleGrid(t, func(edges []Edge) {
		edges[0].Sender.HasArrow = true
		edges[1].Receiver.HasArrow = true
	})
	g := m.Grid()
	tests := []struct {
		at   grid.Coordinate
		want string
	}{
		{grid.At(2, 1), "↑"},
		{grid.At(4, 5), "⬑"},
		{grid.At(3, 3), "┐"},
	}
	for _, tt := range tests {
		cell, _ := g.At(tt.at)
		if got := cell.Glyph(); got != tt.want {
			t.Errorf("glyph at %v = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestAddNodeErrors(t *testing.T) {
	m := New()
	mustAddNode(t, m, Node{ID: "a", Width: 1, Height: 1})

	tests := []struct {
		name string
		node Node
		code errs.Code
	}{
		{"duplicate", Node{ID: "a", Width: 1, Height: 1}, errs.ErrCodeInvalidID},
		{"empty token", Node{ID: "·", Width: 1, Height: 1}, errs.ErrCodeInvalidID},
		{"whitespace", Node{ID: "a b", Width: 1, Height: 1}, errs.ErrCodeInvalidID},
		{"zero width", Node{ID: "b", Width: 0, Height: 1}, errs.ErrCodeInvalidInput},
		{"negative row", Node{ID: "b", Row: -1, Width: 1, Height: 1}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.AddNode(tt.node)
			if !errs.Is(err, tt.code) {
				t.Errorf("AddNode() error = %v, want %s", err, tt.code)
			}
		})
	}
	if got := len(m.Nodes()); got != 1 {
		t.Errorf("Nodes() = %d, want 1", got)
	}
}

func TestAddEdgeErrors(t *testing.T) {
	m := New()
	mustAddNode(t, m, Node{ID: "a", Width: 1, Height: 1})
	cells := []grid.Coordinate{grid.At(1, 0)}

	tests := []struct {
		name string
		edge Edge
		code errs.Code
	}{
		{"unknown node", Edge{ID: "0", Sender: Attachment{NodeID: "a"}, Receiver: Attachment{NodeID: "z"}, Cells: cells}, errs.ErrCodeNotFound},
		{"clashes with node", Edge{ID: "a", Sender: Attachment{NodeID: "a"}, Receiver: Attachment{NodeID: "a"}, Cells: cells}, errs.ErrCodeInvalidID},
		{"no cells", Edge{ID: "0", Sender: Attachment{NodeID: "a"}, Receiver: Attachment{NodeID: "a"}}, errs.ErrCodeInvalidInput},
		{"bad direction", Edge{ID: "0", Sender: Attachment{NodeID: "a", Direction: 9}, Receiver: Attachment{NodeID: "a"}, Cells: cells}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.AddEdge(tt.edge); !errs.Is(err, tt.code) {
				t.Errorf("AddEdge() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	m := simpleGrid(t, nil)
	e, ok := m.Edge("0")
	if !ok {
		t.Fatal("Edge(0) not found")
	}
	e.Cells[0] = grid.At(9, 9)
	nodes := m.Nodes()
	nodes[0].Row = 7

	if got, want := m.Text(), golden(t, "simplegrid.txt"); got != want {
		t.Errorf("manager changed through a returned copy:\n%s", got)
	}
	if _, ok := m.Node("zz"); ok {
		t.Error("Node(zz) found")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := simpleGrid(t, nil)
	c := m.Clone()
	c.AddRowToStart()
	if err := c.CloneColumn(2); err != nil {
		t.Fatalf("CloneColumn: %v", err)
	}
	if got, want := m.Text(), golden(t, "simplegrid.txt"); got != want {
		t.Errorf("original changed after mutating clone:\n%s", got)
	}
}

func TestRemoveEdge(t *testing.T) {
	m := simpleGrid(t, nil)
	var h History
	m.SetRecorder(&h)

	e, err := m.RemoveEdge("0")
	if err != nil {
		t.Fatalf("RemoveEdge(0): %v", err)
	}
	if len(e.Cells) != 4 {
		t.Errorf("removed edge has %d cells, want 4", len(e.Cells))
	}
	if _, ok := m.Edge("0"); ok {
		t.Error("edge 0 still present")
	}
	if got, ok := m.Edge("1"); !ok || got.ID != "1" {
		t.Errorf("Edge(1) = %+v, %v after removing edge 0", got, ok)
	}
	if !m.Grid().IsCellEmpty(grid.At(3, 2)) {
		t.Error("cell (3,2) still occupied")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if evs := h.Events(); len(evs) != 1 || evs[0].Kind != EventUnroute {
		t.Errorf("events = %+v, want one %s", evs, EventUnroute)
	}
	if _, err := m.RemoveEdge("0"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("second RemoveEdge(0) = %v, want NOT_FOUND", err)
	}
}

func TestSizeTracksExtent(t *testing.T) {
	m := New()
	m.SetExtent(3, 4)
	if h, w := m.Size(); h != 3 || w != 4 {
		t.Errorf("Size() = %d, %d, want 3, 4", h, w)
	}
	mustAddNode(t, m, Node{ID: "a", Row: 5, Col: 0, Width: 1, Height: 1})
	if h, w := m.Size(); h != 6 || w != 4 {
		t.Errorf("Size() = %d, %d, want 6, 4", h, w)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *Manager
	}{
		{"overlapping nodes", func(t *testing.T) *Manager {
			m := New()
			mustAddNode(t, m, Node{ID: "a", Width: 2, Height: 2})
			mustAddNode(t, m, Node{ID: "b", Row: 1, Col: 1, Width: 1, Height: 1})
			return m
		}},
		{"edge over node", func(t *testing.T) *Manager {
			return simpleGrid(t, nil).withEdgeCells(t, "0", grid.At(0, 1))
		}},
		{"gap in path", func(t *testing.T) *Manager {
			return simpleGrid(t, nil).withEdgeCells(t, "0", grid.At(2, 1), grid.At(3, 2), grid.At(3, 3))
		}},
		{"detached end", func(t *testing.T) *Manager {
			return simpleGrid(t, nil).withEdgeCells(t, "0", grid.At(2, 1), grid.At(3, 1), grid.At(3, 2))
		}},
		{"shared cell", func(t *testing.T) *Manager {
			return simpleGrid(t, nil).withEdgeCells(t, "0", grid.At(2, 1), grid.At(2, 2), grid.At(1, 2))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build(t).Validate()
			if !errs.Is(err, errs.ErrCodeGridIntegrity) {
				t.Errorf("Validate() = %v, want GRID_INTEGRITY", err)
			}
		})
	}
}

// withEdgeCells overwrites the path of an edge without any checks.
func (m *Manager) withEdgeCells(t *testing.T, id string, cells ...grid.Coordinate) *Manager {
	t.Helper()
	i, ok := m.edgeIndex[id]
	if !ok {
		t.Fatalf("no edge %q", id)
	}
	m.edges[i].Cells = cells
	return m
}

func TestNeighborQueries(t *testing.T) {
	m := simpleGrid(t, nil)
	a, _ := m.Node("a")

	wantRing := []grid.Coordinate{
		grid.At(-1, 0), grid.At(-1, 1),
		grid.At(2, 0), grid.At(2, 1),
		grid.At(0, -1), grid.At(1, -1),
		grid.At(0, 2), grid.At(1, 2),
	}
	if got := m.NeighboringCellCoords(a); !reflect.DeepEqual(got, wantRing) {
		t.Errorf("NeighboringCellCoords(a) = %v, want %v", got, wantRing)
	}
	if got, want := m.EmptyNeighbors(a), []grid.Coordinate{grid.At(2, 0), grid.At(0, 2)}; !reflect.DeepEqual(got, want) {
		t.Errorf("EmptyNeighbors(a) = %v, want %v", got, want)
	}
	if got, want := m.ValidAttachmentPoints(a), []grid.Coordinate{grid.At(2, 0)}; !reflect.DeepEqual(got, want) {
		t.Errorf("ValidAttachmentPoints(a) = %v, want %v", got, want)
	}
}

func TestNeighborQueriesAreNested(t *testing.T) {
	m := simpleGrid(t, nil)
	m.AddRowToEnd()
	m.AddColToStart()
	for _, n := range m.Nodes() {
		ring := toSet(m.NeighboringCellCoords(n))
		empty := m.EmptyNeighbors(n)
		for _, c := range empty {
			if !ring[c] {
				t.Errorf("node %s: empty neighbour %v not in ring", n.ID, c)
			}
		}
		emptySet := toSet(empty)
		for _, c := range m.ValidAttachmentPoints(n) {
			if !emptySet[c] {
				t.Errorf("node %s: attachment point %v not an empty neighbour", n.ID, c)
			}
		}
	}
}

func toSet(cs []grid.Coordinate) map[grid.Coordinate]bool {
	out := make(map[grid.Coordinate]bool, len(cs))
	for _, c := range cs {
		out[c] = true
	}
	return out
}

func TestSideOf(t *testing.T) {
	n := Node{ID: "b", Row: 1, Col: 1, Width: 3, Height: 2}
	tests := []struct {
		p      grid.Coordinate
		want   grid.Direction
		wantOK bool
	}{
		{grid.At(0, 2), grid.North, true},
		{grid.At(3, 3), grid.South, true},
		{grid.At(2, 0), grid.West, true},
		{grid.At(1, 4), grid.East, true},
		{grid.At(0, 0), grid.North, false},
		{grid.At(1, 1), grid.North, false},
		{grid.At(5, 5), grid.North, false},
	}
	for _, tt := range tests {
		got, ok := SideOf(n, tt.p)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("SideOf(%v) = %v, %v, want %v, %v", tt.p, got, ok, tt.want, tt.wantOK)
		}
	}
}
