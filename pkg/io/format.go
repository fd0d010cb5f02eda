package io

import (
	"fmt"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

type document struct {
	Nodes  []node `json:"nodes" yaml:"nodes"`
	Edges  []edge `json:"edges" yaml:"edges"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
}

type node struct {
	ID     string `json:"id" yaml:"id"`
	Row    int    `json:"row" yaml:"row"`
	Col    int    `json:"col" yaml:"col"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

type attachment struct {
	NodeID    string `json:"nodeId" yaml:"nodeId"`
	HasArrow  bool   `json:"hasArrow" yaml:"hasArrow"`
	Direction string `json:"nodeInDirection" yaml:"nodeInDirection"`
}

type edge struct {
	ID       string     `json:"id" yaml:"id"`
	Sender   attachment `json:"senderAttachment" yaml:"senderAttachment"`
	Receiver attachment `json:"receiverAttachment" yaml:"receiverAttachment"`
	Cells    [][]int    `json:"cells" yaml:"cells"`
}

func toDocument(m *diagram.Manager) document {
	nodes, edges := m.Nodes(), m.Edges()
	doc := document{
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = node{ID: n.ID, Row: n.Row, Col: n.Col, Width: n.Width, Height: n.Height}
	}
	for i, e := range edges {
		cells := make([][]int, len(e.Cells))
		for j, c := range e.Cells {
			cells[j] = []int{c.Row, c.Col}
		}
		doc.Edges[i] = edge{
			ID:       e.ID,
			Sender:   fromAttachment(e.Sender),
			Receiver: fromAttachment(e.Receiver),
			Cells:    cells,
		}
	}

	h, w := m.Size()
	nh, nw := m.NeededGridFormat()
	if h > nh || w > nw {
		doc.Height, doc.Width = h, w
	}
	return doc
}

func fromAttachment(a diagram.Attachment) attachment {
	return attachment{NodeID: a.NodeID, HasArrow: a.HasArrow, Direction: a.Direction.String()}
}

func (doc document) manager(opts ...diagram.Option) (*diagram.Manager, error) {
	m := diagram.New(opts...)
	for _, n := range doc.Nodes {
		err := m.AddNode(diagram.Node{ID: n.ID, Row: n.Row, Col: n.Col, Width: n.Width, Height: n.Height})
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		de, err := e.diagramEdge()
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", e.ID, err)
		}
		if err := m.AddEdge(de); err != nil {
			return nil, fmt.Errorf("edge %s: %w", e.ID, err)
		}
	}
	if doc.Height < 0 || doc.Width < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "negative canvas size %dx%d", doc.Height, doc.Width)
	}
	m.SetExtent(doc.Height, doc.Width)
	return m, nil
}

func (e edge) diagramEdge() (diagram.Edge, error) {
	sender, err := e.Sender.diagramAttachment()
	if err != nil {
		return diagram.Edge{}, fmt.Errorf("sender: %w", err)
	}
	receiver, err := e.Receiver.diagramAttachment()
	if err != nil {
		return diagram.Edge{}, fmt.Errorf("receiver: %w", err)
	}
	cells := make([]grid.Coordinate, len(e.Cells))
	for i, c := range e.Cells {
		if len(c) != 2 {
			return diagram.Edge{}, errs.New(errs.ErrCodeInvalidInput, "cell %d has %d components, want 2", i, len(c))
		}
		cells[i] = grid.At(c[0], c[1])
	}
	return diagram.Edge{ID: e.ID, Sender: sender, Receiver: receiver, Cells: cells}, nil
}

func (a attachment) diagramAttachment() (diagram.Attachment, error) {
	d, err := grid.ParseDirection(a.Direction)
	if err != nil {
		return diagram.Attachment{}, err
	}
	return diagram.Attachment{NodeID: a.NodeID, Direction: d, HasArrow: a.HasArrow}, nil
}
