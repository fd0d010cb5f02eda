package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	"github.com/koljapluemer/canvasgrid/pkg/observability"
	"github.com/koljapluemer/canvasgrid/pkg/render"
)

// Render produces every requested format concurrently. The manager is
// only read, so the formats share it.
func Render(ctx context.Context, m *diagram.Manager, labels map[string]string, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))
	renderOpts := opts.RenderOptions(labels)

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := render.Render(gctx, m, format, renderOpts...)
			if err != nil {
				return err
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}
