package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/koljapluemer/canvasgrid/pkg/cache"
	"github.com/koljapluemer/canvasgrid/pkg/canvas"
	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	"github.com/koljapluemer/canvasgrid/pkg/layout"
	"github.com/koljapluemer/canvasgrid/pkg/observability"
)

// Runner encapsulates pipeline execution with caching. Both CLI and API
// use it.
//
// The Runner holds no results, only the cache and logger. Multiple
// goroutines can share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses [cache.DefaultKeyer], a nil
// cache disables caching and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{CanvasHash: cache.Hash(opts.Canvas)}

	// Stage 1: Parse
	parseStart := time.Now()
	c, err := Parse(ctx, opts.Canvas)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = len(c.LayoutNodes())
	result.Stats.EdgeCount = len(c.LayoutEdges())

	r.Logger.Info("parsed canvas",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	lr, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, c, result.CanvasHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Manager = lr.Manager
	result.Labels = lr.Labels
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Growths = lr.Stats.Growths
	result.Stats.Height, result.Stats.Width = lr.Manager.Size()
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"height", result.Stats.Height,
		"width", result.Stats.Width,
		"growths", result.Stats.Growths,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, layoutHash, renderHit, err := r.RenderWithCacheInfo(ctx, lr.Manager, lr.Labels, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = layoutHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo lays out c with caching and reports whether
// the result came from the cache.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, c *canvas.Canvas, canvasHash string, opts Options) (*layout.Result, bool, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()

	useCache := opts.Recorder == nil
	cacheKey := r.Keyer.LayoutKey(canvasHash, opts.LayoutKeyOpts())

	if useCache && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			m, stored, err := UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &layout.Result{Manager: m, Labels: stored.Labels, Stats: stored.Stats}, true, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	res, err := GenerateLayout(ctx, c, opts)
	if err != nil {
		return nil, false, err
	}

	if useCache {
		if data, err := MarshalLayout(res.Manager, res.Labels, res.Stats); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	return res, false, nil
}

// RenderWithCacheInfo renders m in every requested format with caching. It
// returns the artifacts, the layout hash used as cache key, and whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *diagram.Manager, labels map[string]string, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	layoutData, err := MarshalLayout(m, labels, layout.Stats{})
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, layoutHash, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, m, labels, renderOpts)
	if err != nil {
		return nil, "", false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
		artifacts[format] = data
	}
	return artifacts, layoutHash, false, nil
}

// StoreResult saves a finished layout under id for later retrieval with
// [Runner.LoadResult].
func (r *Runner) StoreResult(ctx context.Context, id string, m *diagram.Manager, labels map[string]string) error {
	data, err := MarshalLayout(m, labels, layout.Stats{})
	if err != nil {
		return err
	}
	if err := r.Cache.Set(ctx, r.Keyer.ResultKey(id), data, cache.TTLResult); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, "result", len(data))
	return nil
}

// LoadResult returns a layout saved with [Runner.StoreResult]. found is
// false when id is unknown or expired.
func (r *Runner) LoadResult(ctx context.Context, id string) (m *diagram.Manager, labels map[string]string, found bool, err error) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.ResultKey(id))
	if err != nil || !hit {
		if err == nil {
			observability.Cache().OnCacheMiss(ctx, "result")
		}
		return nil, nil, false, err
	}
	observability.Cache().OnCacheHit(ctx, "result")
	m, stored, err := UnmarshalLayout(data)
	if err != nil {
		return nil, nil, false, fmt.Errorf("stored layout %s: %w", id, err)
	}
	return m, stored.Labels, true, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
