package pipeline

import (
	"context"
	"time"

	"github.com/koljapluemer/canvasgrid/pkg/canvas"
	"github.com/koljapluemer/canvasgrid/pkg/observability"
)

// Parse decodes and validates a canvas document.
func Parse(ctx context.Context, data []byte) (*canvas.Canvas, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(data))
	start := time.Now()

	c, err := canvas.Parse(data)
	if err != nil {
		hooks.OnParseComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnParseComplete(ctx, len(c.LayoutNodes()), len(c.LayoutEdges()), time.Since(start), nil)
	return c, nil
}
