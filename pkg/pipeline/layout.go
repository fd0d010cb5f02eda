package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/koljapluemer/canvasgrid/pkg/canvas"
	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	cgio "github.com/koljapluemer/canvasgrid/pkg/io"
	"github.com/koljapluemer/canvasgrid/pkg/layout"
	"github.com/koljapluemer/canvasgrid/pkg/observability"
)

// GenerateLayout lays out a parsed canvas.
func GenerateLayout(ctx context.Context, c *canvas.Canvas, opts Options) (*layout.Result, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(c.LayoutNodes()), len(c.LayoutEdges()))
	start := time.Now()

	res, err := layout.Build(ctx, c, opts.LayoutOptions())
	if err != nil {
		hooks.OnLayoutComplete(ctx, observability.LayoutSummary{}, time.Since(start), err)
		return nil, err
	}
	hooks.OnLayoutComplete(ctx, summarize(res), time.Since(start), nil)
	return res, nil
}

func summarize(res *layout.Result) observability.LayoutSummary {
	h, w := res.Manager.Size()
	return observability.LayoutSummary{
		Height:  h,
		Width:   w,
		Growths: res.Stats.Growths,
		Purged:  res.Stats.Purged,
	}
}

// StoredLayout is the cached and stored form of a layout: the serialized
// diagram plus the labels that go with it.
type StoredLayout struct {
	Diagram json.RawMessage   `json:"diagram"`
	Labels  map[string]string `json:"labels"`
	Stats   layout.Stats      `json:"stats"`
}

// MarshalLayout encodes a diagram and its labels.
func MarshalLayout(m *diagram.Manager, labels map[string]string, stats layout.Stats) ([]byte, error) {
	d, err := cgio.MarshalJSON(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(StoredLayout{Diagram: d, Labels: labels, Stats: stats})
}

// UnmarshalLayout decodes what [MarshalLayout] wrote. The diagram is
// validated.
func UnmarshalLayout(data []byte) (*diagram.Manager, StoredLayout, error) {
	var s StoredLayout
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, s, err
	}
	m, err := cgio.UnmarshalJSON(s.Diagram)
	if err != nil {
		return nil, s, err
	}
	if err := m.Validate(); err != nil {
		return nil, s, err
	}
	return m, s, nil
}
