package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
)

// DefaultCellSize is the cell edge length in points when [Options.CellSize]
// is zero.
const DefaultCellSize = 32

// cellSpacing stretches grid positions so labels fit between nodes.
const cellSpacing = 3

// Options configures node-link rendering.
type Options struct {
	// Labels maps node ids to display text. Missing entries show the id.
	Labels map[string]string
	// CellSize is the distance between adjacent grid cells in points.
	CellSize int
}

// ToDOT converts a diagram to Graphviz DOT. Every node carries a pinned
// pos attribute derived from the centre of its grid rectangle, so neato
// keeps the grid arrangement. Edges keep their arrow ends.
func ToDOT(m *diagram.Manager, opts Options) string {
	cs := opts.CellSize
	if cs <= 0 {
		cs = DefaultCellSize
	}
	step := float64(cs*cellSpacing) / 72
	height, _ := m.Size()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [dir=both];\n")
	buf.WriteString("\n")

	for _, n := range m.Nodes() {
		x := (float64(n.Col) + float64(n.Width)/2) * step
		y := (float64(height-n.Row) - float64(n.Height)/2) * step
		fmt.Fprintf(&buf, "  %s [label=%s, pos=\"%.2f,%.2f!\"];\n",
			quote(n.ID), quote(label(opts.Labels, n.ID)), x, y)
	}

	buf.WriteString("\n")
	for _, e := range m.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s [id=%s, arrowtail=%s, arrowhead=%s];\n",
			quote(e.Sender.NodeID), quote(e.Receiver.NodeID), quote("edge-"+e.ID),
			arrow(e.Sender.HasArrow), arrow(e.Receiver.HasArrow))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(labels map[string]string, id string) string {
	if l := labels[id]; l != "" {
		return l
	}
	return id
}

func arrow(has bool) string {
	if has {
		return "normal"
	}
	return "none"
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")

// quote returns s as a DOT double-quoted string.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// RenderSVG lays out a DOT graph with neato, honouring pinned positions,
// and returns the SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg header with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
