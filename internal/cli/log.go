package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that filters
// messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Laid out 12 nodes (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logRecorder prints every grid step at debug level, followed by the
// structural snapshot indented under it.
type logRecorder struct {
	logger *log.Logger
}

func newLogRecorder(l *log.Logger) *logRecorder {
	return &logRecorder{logger: l.WithPrefix("trace")}
}

func (r *logRecorder) Record(e diagram.Event) {
	r.logger.Debug(e.Message, "step", e.Kind)
	if r.logger.GetLevel() > log.DebugLevel {
		return
	}
	for line := range strings.SplitSeq(e.Snapshot, "\n") {
		r.logger.Debug("  " + line)
	}
}
