package render

import (
	"bytes"

	"github.com/koljapluemer/canvasgrid/pkg/canvas"
	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// canvasScale is the number of canvas pixels per output pixel. Canvas
// editors show text at a much larger scale than a raster cell.
const canvasScale = 8

var canvasSides = map[grid.Direction]string{
	grid.North: "top",
	grid.East:  "right",
	grid.South: "bottom",
	grid.West:  "left",
}

// renderCanvas writes the diagram back as a JSON Canvas document with every
// node at its grid position and every edge leaving the side it is attached
// to.
func renderCanvas(m *diagram.Manager, o *options) ([]byte, error) {
	step := o.cellSize * canvasScale
	c := canvas.Canvas{Nodes: []canvas.Node{}, Edges: []canvas.Edge{}}
	for _, n := range m.Nodes() {
		c.Nodes = append(c.Nodes, canvas.Node{
			ID:     n.ID,
			Type:   canvas.TypeText,
			X:      n.Col * step,
			Y:      n.Row * step,
			Width:  n.Width * step,
			Height: n.Height * step,
			Text:   o.label(n.ID),
		})
	}
	for _, e := range m.Edges() {
		c.Edges = append(c.Edges, canvas.Edge{
			ID:       "edge-" + e.ID,
			FromNode: e.Sender.NodeID,
			FromSide: canvasSides[e.Sender.Direction.Opposite()],
			FromEnd:  canvasEnd(e.Sender.HasArrow),
			ToNode:   e.Receiver.NodeID,
			ToSide:   canvasSides[e.Receiver.Direction.Opposite()],
			ToEnd:    canvasEnd(e.Receiver.HasArrow),
		})
	}

	var buf bytes.Buffer
	if err := canvas.Write(&c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func canvasEnd(arrow bool) string {
	if arrow {
		return canvas.EndArrow
	}
	return canvas.EndNone
}
