package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  .grid-container {
    display: grid;
    grid-template-columns: repeat({{.Width}}, minmax({{.CellSize}}px, auto));
    grid-template-rows: repeat({{.Height}}, minmax({{.CellSize}}px, auto));
    grid-template-areas:
      {{.Areas}};
    padding: 1rem;
    background: #f5f5f5;
    border-radius: 8px;
  }
  .node {
    padding: 0.5rem;
    border: 1px solid #ddd;
    border-radius: 4px;
    background: white;
    box-shadow: 0 2px 4px rgba(0,0,0,0.1);
    font-family: system-ui, -apple-system, sans-serif;
  }
  .edge {
    display: flex;
    align-items: center;
    justify-content: center;
    font-family: ui-monospace, monospace;
    color: #555;
  }
{{range .Nodes}}  .{{.Area}} { grid-area: {{.Area}}; }
{{end}}</style>
</head>
<body>
<div class="grid-container">
{{range .Nodes}}  <div class="node {{.Class}}" id="{{.ID}}">{{.Body}}</div>
{{end}}{{range .Edges}}  <div class="edge" data-edge="{{.ID}}" style="{{.Style}}">{{.Glyph}}</div>
{{end}}</div>
</body>
</html>
`))

type htmlPage struct {
	Title    string
	Width    int
	Height   int
	CellSize int
	Areas    template.CSS
	Nodes    []htmlNode
	Edges    []htmlEdge
}

type htmlNode struct {
	ID    string
	Area  template.CSS
	Class string
	Body  template.HTML
}

type htmlEdge struct {
	ID    string
	Style template.CSS
	Glyph string
}

// renderHTML lays the diagram out as a CSS grid. Every node owns a named
// area and every edge cell is a small glyph placed on its row and column.
func renderHTML(m *diagram.Manager, o *options) ([]byte, error) {
	g := m.Grid()
	nodes := m.Nodes()

	areas := make(map[string]string, len(nodes))
	page := htmlPage{
		Title:    o.title,
		Width:    g.Width(),
		Height:   g.Height(),
		CellSize: o.cellSize,
	}
	for i, n := range nodes {
		area := fmt.Sprintf("n%d", i)
		areas[n.ID] = area
		body, err := markdown(o.label(n.ID))
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		page.Nodes = append(page.Nodes, htmlNode{
			ID:    n.ID,
			Area:  template.CSS(area),
			Class: area,
			Body:  body,
		})
	}

	rows := make([]string, g.Height())
	for r := range g.Height() {
		names := make([]string, g.Width())
		for c, cell := range g.Row(r) {
			names[c] = "."
			switch cell.Kind {
			case grid.KindNode:
				names[c] = areas[cell.Occupant]
			case grid.KindEdge:
				page.Edges = append(page.Edges, htmlEdge{
					ID:    cell.Occupant,
					Style: template.CSS(fmt.Sprintf("grid-row: %d; grid-column: %d", r+1, c+1)),
					Glyph: cell.Glyph(),
				})
			}
		}
		rows[r] = `"` + strings.Join(names, " ") + `"`
	}
	page.Areas = template.CSS(strings.Join(rows, "\n      "))

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// markdown converts node text to HTML. Raw HTML in the input is omitted.
func markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
