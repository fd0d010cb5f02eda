package diagram

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// Manager is the sole owner of a diagram's nodes and edges.
//
// The zero value is not usable - use [New].
type Manager struct {
	nodes     []*Node
	edges     []*Edge
	nodeIndex map[string]int
	edgeIndex map[string]int

	// height and width are the canvas extent. The materialized grid is never
	// smaller than the extent or the content.
	height int
	width  int

	rng *rand.Rand
	rec Recorder
}

// Option configures a [Manager].
type Option func(*Manager)

// WithRand sets the random source used for node placement.
func WithRand(r *rand.Rand) Option { return func(m *Manager) { m.rng = r } }

// WithSeed seeds a deterministic random source for node placement.
func WithSeed(seed uint64) Option {
	return func(m *Manager) { m.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef)) }
}

// WithRecorder attaches a diagnostics sink.
func WithRecorder(r Recorder) Option { return func(m *Manager) { m.rec = r } }

// New returns an empty manager whose grid is 1x1.
func New(opts ...Option) *Manager {
	m := &Manager{
		nodeIndex: make(map[string]int),
		edgeIndex: make(map[string]int),
		height:    1,
		width:     1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m
}

// Clone returns an independent copy sharing the random source and recorder.
func (m *Manager) Clone() *Manager {
	c := &Manager{
		nodes:     make([]*Node, len(m.nodes)),
		edges:     make([]*Edge, len(m.edges)),
		nodeIndex: make(map[string]int, len(m.nodeIndex)),
		edgeIndex: make(map[string]int, len(m.edgeIndex)),
		height:    m.height,
		width:     m.width,
		rng:       m.rng,
		rec:       m.rec,
	}
	for i, n := range m.nodes {
		cp := *n
		c.nodes[i] = &cp
		c.nodeIndex[n.ID] = i
	}
	for i, e := range m.edges {
		cp := e.clone()
		c.edges[i] = &cp
		c.edgeIndex[e.ID] = i
	}
	return c
}

// SetRecorder replaces the diagnostics sink. A nil recorder disables it.
func (m *Manager) SetRecorder(r Recorder) { m.rec = r }

// Nodes returns a copy of all nodes in insertion order.
func (m *Manager) Nodes() []Node {
	out := make([]Node, len(m.nodes))
	for i, n := range m.nodes {
		out[i] = *n
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (m *Manager) Edges() []Edge {
	out := make([]Edge, len(m.edges))
	for i, e := range m.edges {
		out[i] = e.clone()
	}
	return out
}

// Node looks up a node by id.
func (m *Manager) Node(id string) (Node, bool) {
	i, ok := m.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return *m.nodes[i], true
}

// Edge looks up an edge by id.
func (m *Manager) Edge(id string) (Edge, bool) {
	i, ok := m.edgeIndex[id]
	if !ok {
		return Edge{}, false
	}
	return m.edges[i].clone(), true
}

func (m *Manager) node(id string) (Node, error) {
	n, ok := m.Node(id)
	if !ok {
		return Node{}, errs.New(errs.ErrCodeNotFound, "unknown node %q", id)
	}
	return n, nil
}

func (m *Manager) hasID(id string) bool {
	_, isNode := m.nodeIndex[id]
	_, isEdge := m.edgeIndex[id]
	return isNode || isEdge
}

func (m *Manager) checkNewID(id string) error {
	if err := errs.ValidateID(id); err != nil {
		return err
	}
	if m.hasID(id) {
		return errs.New(errs.ErrCodeInvalidID, "duplicate id %q", id)
	}
	return nil
}

// AddNode inserts n as given. Overlap with existing nodes is not checked;
// use [Manager.Validate] for that.
func (m *Manager) AddNode(n Node) error {
	if err := m.checkNewID(n.ID); err != nil {
		return err
	}
	if n.Width < 1 || n.Height < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "node %q has size %dx%d, want at least 1x1", n.ID, n.Width, n.Height)
	}
	if n.Row < 0 || n.Col < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "node %q at %v is outside the grid", n.ID, n.Origin())
	}
	m.nodeIndex[n.ID] = len(m.nodes)
	m.nodes = append(m.nodes, &n)
	m.record(EventPlace, "placed node %s at %v", n.ID, n.Origin())
	return nil
}

// AddNodeAt inserts a 1x1 node at (row, col).
func (m *Manager) AddNodeAt(id string, row, col int) error {
	return m.AddNode(Node{ID: id, Row: row, Col: col, Width: 1, Height: 1})
}

// AddEdge inserts a previously routed edge, typically when loading a saved
// diagram. Both attachments must name existing nodes and the path must not
// be empty; the geometry is checked by [Manager.Validate].
func (m *Manager) AddEdge(e Edge) error {
	if err := m.checkNewID(e.ID); err != nil {
		return err
	}
	for _, a := range []Attachment{e.Sender, e.Receiver} {
		if _, ok := m.nodeIndex[a.NodeID]; !ok {
			return errs.New(errs.ErrCodeNotFound, "edge %q references unknown node %q", e.ID, a.NodeID)
		}
		if !a.Direction.Valid() {
			return errs.New(errs.ErrCodeInvalidInput, "edge %q has invalid attachment direction", e.ID)
		}
	}
	if len(e.Cells) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "edge %q has no cells", e.ID)
	}
	for _, c := range e.Cells {
		if c.Row < 0 || c.Col < 0 {
			return errs.New(errs.ErrCodeInvalidInput, "edge %q cell %v is outside the grid", e.ID, c)
		}
	}
	e = e.clone()
	m.edgeIndex[e.ID] = len(m.edges)
	m.edges = append(m.edges, &e)
	return nil
}

// RemoveEdge deletes an edge and frees its cells. It returns the removed
// edge.
func (m *Manager) RemoveEdge(id string) (Edge, error) {
	i, ok := m.edgeIndex[id]
	if !ok {
		return Edge{}, errs.New(errs.ErrCodeNotFound, "unknown edge %q", id)
	}
	e := m.edges[i]
	m.edges = slices.Delete(m.edges, i, i+1)
	delete(m.edgeIndex, id)
	for j := i; j < len(m.edges); j++ {
		m.edgeIndex[m.edges[j].ID] = j
	}
	m.record(EventUnroute, "removed edge %s", id)
	return e.clone(), nil
}

// nextEdgeID returns the smallest non-negative integer not used as an id.
func (m *Manager) nextEdgeID() string {
	for i := 0; ; i++ {
		if id := strconv.Itoa(i); !m.hasID(id) {
			return id
		}
	}
}

// NeededGridFormat returns the smallest (height, width) that holds every
// node and edge cell, never less than 1x1.
func (m *Manager) NeededGridFormat() (height, width int) {
	height, width = 1, 1
	for _, n := range m.nodes {
		height = max(height, n.Row+n.Height)
		width = max(width, n.Col+n.Width)
	}
	for _, e := range m.edges {
		for _, c := range e.Cells {
			height = max(height, c.Row+1)
			width = max(width, c.Col+1)
		}
	}
	return height, width
}

// Size returns the dimensions of the materialized grid: the canvas extent
// widened to fit the content.
func (m *Manager) Size() (height, width int) {
	h, w := m.NeededGridFormat()
	return max(h, m.height), max(w, m.width)
}

// SetExtent sets the canvas extent. Values below the needed format have no
// visible effect until the content shrinks.
func (m *Manager) SetExtent(height, width int) {
	m.height, m.width = max(height, 1), max(width, 1)
}

// Grid materializes the current nodes and edges. Edge cells are written
// after node cells.
func (m *Manager) Grid() *grid.Grid {
	g := grid.New(m.Size())
	for _, n := range m.nodes {
		cell := grid.NodeCell(n.ID)
		for _, c := range n.Cells() {
			g.Set(c, cell)
		}
	}
	for _, e := range m.edges {
		for i, cell := range e.gridCells() {
			g.Set(e.Cells[i], cell)
		}
	}
	return g
}

// Text returns the structural form of the current grid.
func (m *Manager) Text() string { return m.Grid().Text() }

// Flow returns the glyph form of the current grid.
func (m *Manager) Flow() string { return m.Grid().Flow() }

func (m *Manager) record(kind EventKind, format string, args ...any) {
	if m.rec == nil {
		return
	}
	m.rec.Record(Event{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Snapshot: m.Text(),
	})
}
