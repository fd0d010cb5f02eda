package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, errors at warn
// level. It implements all three hook sets.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnParseStart(_ context.Context, size int) {
	h.logger.Debug("parse start", "bytes", size)
}

func (h *LogHooks) OnParseComplete(_ context.Context, nodes, edges int, d time.Duration, err error) {
	h.done("parse", err, "nodes", nodes, "edges", edges, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, nodes, edges int) {
	h.logger.Debug("layout start", "nodes", nodes, "edges", edges)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, s LayoutSummary, d time.Duration, err error) {
	if err != nil {
		h.done("layout", err, "duration", d)
		return
	}
	h.done("layout", nil,
		"grid", fmt.Sprintf("%dx%d", s.Height, s.Width),
		"growths", s.Growths, "purged", s.Purged, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", err, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Warn("request failed", "method", method, "route", route, "err", err)
}

func (h *LogHooks) done(stage string, err error, kv ...any) {
	if err != nil {
		h.logger.Warn(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" complete", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
