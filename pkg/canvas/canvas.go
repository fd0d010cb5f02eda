// Package canvas reads and writes JSON Canvas 1.0 documents, the ".canvas"
// files produced by Obsidian and other infinite-canvas editors.
//
// Only the fields the layout needs are modelled. Unknown fields are ignored
// on read so documents from newer editors still load.
package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
)

// Node types defined by JSON Canvas.
const (
	TypeText  = "text"
	TypeFile  = "file"
	TypeLink  = "link"
	TypeGroup = "group"
)

// Edge end shapes.
const (
	EndNone  = "none"
	EndArrow = "arrow"
)

// Node is a canvas node. Coordinates are in pixels.
type Node struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Text   string `json:"text,omitempty"`
	File   string `json:"file,omitempty"`
	URL    string `json:"url,omitempty"`
	Label  string `json:"label,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Edge is a canvas edge. Empty ends take the JSON Canvas defaults: no
// arrow at the source, an arrow at the target.
type Edge struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	FromSide string `json:"fromSide,omitempty"`
	FromEnd  string `json:"fromEnd,omitempty"`
	ToNode   string `json:"toNode"`
	ToSide   string `json:"toSide,omitempty"`
	ToEnd    string `json:"toEnd,omitempty"`
	Label    string `json:"label,omitempty"`
	Color    string `json:"color,omitempty"`
}

// FromArrow reports whether the source end carries an arrow.
func (e Edge) FromArrow() bool { return e.FromEnd == EndArrow }

// ToArrow reports whether the target end carries an arrow.
func (e Edge) ToArrow() bool { return e.ToEnd == "" || e.ToEnd == EndArrow }

// Canvas is a whole document.
type Canvas struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Read decodes a canvas from r and validates it.
func Read(r io.Reader) (*Canvas, error) {
	var c Canvas
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode canvas")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Parse decodes a canvas from b.
func Parse(b []byte) (*Canvas, error) {
	return Read(bytes.NewReader(b))
}

// Import reads the canvas file at path.
func Import(path string) (*Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes c as indented JSON.
func Write(c *Canvas, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Validate checks that ids are present and unique and that every edge
// connects existing nodes.
func (c *Canvas) Validate() error {
	seen := make(map[string]bool, len(c.Nodes)+len(c.Edges))
	for i, n := range c.Nodes {
		if n.ID == "" {
			return errs.New(errs.ErrCodeInvalidInput, "node %d has no id", i)
		}
		if seen[n.ID] {
			return errs.New(errs.ErrCodeInvalidInput, "duplicate canvas id %q", n.ID)
		}
		seen[n.ID] = true
	}
	for i, e := range c.Edges {
		if e.ID == "" {
			return errs.New(errs.ErrCodeInvalidInput, "edge %d has no id", i)
		}
		if seen[e.ID] {
			return errs.New(errs.ErrCodeInvalidInput, "duplicate canvas id %q", e.ID)
		}
		seen[e.ID] = true
		for _, end := range []string{e.FromNode, e.ToNode} {
			if _, ok := c.Node(end); !ok {
				return errs.New(errs.ErrCodeInvalidInput, "edge %q references unknown node %q", e.ID, end)
			}
		}
	}
	return nil
}

// Node looks up a node by id.
func (c *Canvas) Node(id string) (Node, bool) {
	for _, n := range c.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// LayoutNodes returns the nodes that take part in a grid layout. Groups are
// containers and are skipped.
func (c *Canvas) LayoutNodes() []Node {
	var out []Node
	for _, n := range c.Nodes {
		if n.Type != TypeGroup {
			out = append(out, n)
		}
	}
	return out
}

// LayoutEdges returns the edges whose ends are both layout nodes.
func (c *Canvas) LayoutEdges() []Edge {
	keep := make(map[string]bool)
	for _, n := range c.LayoutNodes() {
		keep[n.ID] = true
	}
	var out []Edge
	for _, e := range c.Edges {
		if keep[e.FromNode] && keep[e.ToNode] {
			out = append(out, e)
		}
	}
	return out
}

// DisplayText returns the text shown for a node: its text, the base name of its
// file, its url, its label, or its id, whichever is set first.
func (n Node) DisplayText() string {
	switch {
	case n.Text != "":
		return n.Text
	case n.File != "":
		return filepath.Base(n.File)
	case n.URL != "":
		return n.URL
	case n.Label != "":
		return n.Label
	}
	return n.ID
}
