// Package pipeline runs the parse → layout → render pipeline shared by the
// CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode and validate a JSON Canvas document
//  2. Layout: place nodes and route edges on a grid (package layout)
//  3. Render: produce artifacts in the requested formats (package render)
//
// Layouts and artifacts are cached. A layout is keyed by the hash of the
// canvas and the layout options; an artifact by the hash of the serialized
// layout and the render options, so re-rendering a known layout never runs
// the layout again.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Canvas:  data,
//	    Formats: []string{"flow", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(string(result.Artifacts["flow"]))
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/koljapluemer/canvasgrid/pkg/cache"
	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/layout"
	"github.com/koljapluemer/canvasgrid/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = layout.DefaultSeed

	// DefaultMaxAttempts bounds grid growth per node or edge.
	DefaultMaxAttempts = layout.DefaultMaxAttempts

	// DefaultCellSize is the pixel size of one grid cell.
	DefaultCellSize = render.DefaultCellSize

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = render.FormatFlow
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	// Parse options
	Canvas []byte `json:"-"`

	// Layout options
	Seed        uint64 `json:"seed,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty"`
	SkipPurge   bool   `json:"skip_purge,omitempty"` // keep redundant rows and columns (default: false = purge)
	Refresh     bool   `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	CellSize int      `json:"cell_size,omitempty"`
	Title    string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Recorder receives every grid step. Setting it bypasses the layout
	// cache, since a cached layout has no steps to replay.
	Recorder diagram.Recorder `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Manager holds the laid out diagram.
	Manager *diagram.Manager

	// Labels maps grid node ids to display text.
	Labels map[string]string

	// CanvasHash is the content hash of the input canvas.
	CanvasHash string

	// LayoutHash is the content hash of the serialized diagram.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Height     int
	Width      int
	Growths    int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // layout came from cache
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errs.ValidateFormat(format, render.Formats)
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Canvas) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "canvas is required")
	}
	if o.MaxAttempts < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_attempts must not be negative")
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.CellSize == 0 {
		o.CellSize = DefaultCellSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and checks the formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions returns the options for [layout.Build].
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Seed:        o.Seed,
		MaxAttempts: o.MaxAttempts,
		Purge:       !o.SkipPurge,
		Recorder:    o.Recorder,
		Logger:      o.Logger,
	}
}

// RenderOptions returns the options for [render.Render].
func (o *Options) RenderOptions(labels map[string]string) []render.Option {
	opts := []render.Option{render.WithLabels(labels), render.WithCellSize(o.CellSize)}
	if o.Title != "" {
		opts = append(opts, render.WithTitle(o.Title))
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Seed:        o.Seed,
		MaxAttempts: o.MaxAttempts,
		Purge:       !o.SkipPurge,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		CellSize: o.CellSize,
		Title:    o.Title,
	}
}
