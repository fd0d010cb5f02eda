package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	cgio "github.com/koljapluemer/canvasgrid/pkg/io"
	"github.com/koljapluemer/canvasgrid/pkg/render/nodelink"
)

// Output formats.
const (
	FormatText   = "txt"
	FormatFlow   = "flow"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatHTML   = "html"
	FormatPNG    = "png"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatCanvas = "canvas"
)

// Formats lists every supported format.
var Formats = []string{
	FormatText, FormatFlow, FormatJSON, FormatYAML, FormatHTML,
	FormatPNG, FormatDOT, FormatSVG, FormatCanvas,
}

// DefaultCellSize is the edge length of one grid cell in pixels.
const DefaultCellSize = 32

var contentTypes = map[string]string{
	FormatText:   "text/plain; charset=utf-8",
	FormatFlow:   "text/plain; charset=utf-8",
	FormatJSON:   "application/json",
	FormatYAML:   "application/yaml",
	FormatHTML:   "text/html; charset=utf-8",
	FormatPNG:    "image/png",
	FormatDOT:    "text/vnd.graphviz",
	FormatSVG:    "image/svg+xml",
	FormatCanvas: "application/json",
}

// ContentType returns the MIME type of a format, or
// application/octet-stream for unknown formats.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Ext returns the file extension for a format, including the dot.
func Ext(format string) string {
	switch format {
	case FormatFlow:
		return ".flow.txt"
	case FormatYAML:
		return ".yaml"
	}
	return "." + format
}

// Option configures [Render].
type Option func(*options)

type options struct {
	labels   map[string]string
	cellSize int
	title    string
}

// WithLabels sets the display text per node id.
func WithLabels(labels map[string]string) Option {
	return func(o *options) { o.labels = labels }
}

// WithCellSize sets the pixel size of one cell for png, html, dot, svg and
// canvas output. Values below 8 are raised to 8.
func WithCellSize(px int) Option {
	return func(o *options) { o.cellSize = max(px, 8) }
}

// WithTitle sets the document title for html output.
func WithTitle(s string) Option {
	return func(o *options) { o.title = s }
}

func newOptions(opts []Option) *options {
	o := &options{cellSize: DefaultCellSize, title: "canvasgrid"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) label(id string) string {
	if l := o.labels[id]; l != "" {
		return l
	}
	return id
}

// Render produces format from m. An unknown format is an INVALID_FORMAT
// error.
func Render(ctx context.Context, m *diagram.Manager, format string, opts ...Option) ([]byte, error) {
	if err := errs.ValidateFormat(format, Formats); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatText:
		data = []byte(m.Text() + "\n")
	case FormatFlow:
		data = []byte(m.Flow() + "\n")
	case FormatJSON:
		data, err = cgio.MarshalJSON(m)
	case FormatYAML:
		data, err = cgio.MarshalYAML(m)
	case FormatHTML:
		data, err = renderHTML(m, o)
	case FormatPNG:
		data, err = renderPNG(m, o)
	case FormatDOT:
		data = []byte(nodelink.ToDOT(m, o.nodelink()))
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(m, o.nodelink()))
	case FormatCanvas:
		data, err = renderCanvas(m, o)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func (o *options) nodelink() nodelink.Options {
	return nodelink.Options{Labels: o.labels, CellSize: o.cellSize}
}

// firstLine returns the first non-empty line of s without markdown heading
// markers.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if line != "" {
			return line
		}
	}
	return ""
}
