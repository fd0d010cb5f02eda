package render

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

var (
	edgeColor = color.RGBA{0x44, 0x44, 0x44, 0xff}
	nodeFill  = color.White
	nodeLine  = color.Black
	pngBG     = color.RGBA{0xf5, 0xf5, 0xf5, 0xff}
)

// renderPNG draws the flow grid: nodes as labelled boxes and edge cells as
// strokes from the cell centre to each connected side.
func renderPNG(m *diagram.Manager, o *options) ([]byte, error) {
	g := m.Grid()
	cs := float64(o.cellSize)

	dc := gg.NewContext(g.Width()*o.cellSize, g.Height()*o.cellSize)
	dc.SetColor(pngBG)
	dc.Clear()

	f, err := monoFont()
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    cs * 0.4,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.SetLineWidth(max(cs/16, 1))
	for r := range g.Height() {
		for c, cell := range g.Row(r) {
			if cell.Kind == grid.KindEdge {
				drawEdgeCell(dc, cell, float64(c)*cs, float64(r)*cs, cs)
			}
		}
	}

	for _, n := range m.Nodes() {
		drawNode(dc, n, firstLine(o.label(n.ID)), cs)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawEdgeCell(dc *gg.Context, cell grid.Cell, x, y, cs float64) {
	cx, cy := x+cs/2, y+cs/2
	dc.SetColor(edgeColor)
	for _, d := range grid.Directions {
		if !cell.Links().Has(d) {
			continue
		}
		dr, dcol := d.Delta()
		dc.DrawLine(cx, cy, cx+float64(dcol)*cs/2, cy+float64(dr)*cs/2)
		dc.Stroke()
	}
	for _, d := range grid.Directions {
		if cell.Arrows().Has(d) {
			drawArrowHead(dc, cx, cy, d, cs)
		}
	}
}

// drawArrowHead fills a triangle whose tip sits on side d of the cell.
func drawArrowHead(dc *gg.Context, cx, cy float64, d grid.Direction, cs float64) {
	dr, dcol := d.Delta()
	dx, dy := float64(dcol), float64(dr)
	tipX, tipY := cx+dx*cs/2, cy+dy*cs/2
	size := cs / 4

	dc.MoveTo(tipX, tipY)
	dc.LineTo(tipX-size*dx+size*dy/2, tipY-size*dy-size*dx/2)
	dc.LineTo(tipX-size*dx-size*dy/2, tipY-size*dy+size*dx/2)
	dc.ClosePath()
	dc.Fill()
}

func drawNode(dc *gg.Context, n diagram.Node, label string, cs float64) {
	inset := cs / 10
	x, y := float64(n.Col)*cs+inset, float64(n.Row)*cs+inset
	w, h := float64(n.Width)*cs-2*inset, float64(n.Height)*cs-2*inset

	dc.DrawRoundedRectangle(x, y, w, h, inset)
	dc.SetColor(nodeFill)
	dc.FillPreserve()
	dc.SetColor(nodeLine)
	dc.Stroke()

	label = fitText(dc, label, w-inset)
	dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.35)
}

// fitText shortens s with a trailing ellipsis until it is at most width
// pixels wide.
func fitText(dc *gg.Context, s string, width float64) string {
	if tw, _ := dc.MeasureString(s); tw <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		t := string(runes) + "…"
		if tw, _ := dc.MeasureString(t); tw <= width {
			return t
		}
	}
	return ""
}
