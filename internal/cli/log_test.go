package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("test completed")

	if !strings.Contains(buf.String(), "test completed") {
		t.Errorf("progress.done() output = %q, want message", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the custom logger")
	}
}

func TestLogRecorder(t *testing.T) {
	var buf bytes.Buffer
	rec := newLogRecorder(newLogger(&buf, log.DebugLevel))

	m := diagram.New(diagram.WithRecorder(rec))
	if err := m.AddNodeAt("a", 0, 0); err != nil {
		t.Fatalf("AddNodeAt() error: %v", err)
	}
	m.AddColToEnd()

	out := buf.String()
	if !strings.Contains(out, "trace") {
		t.Errorf("output = %q, want trace prefix", out)
	}
	if !strings.Contains(out, "a ·") {
		t.Errorf("output = %q, want snapshot row", out)
	}

	buf.Reset()
	quiet := newLogRecorder(newLogger(&buf, log.InfoLevel))
	quiet.Record(diagram.Event{Kind: diagram.EventGrow, Message: "grow", Snapshot: "a"})
	if buf.Len() != 0 {
		t.Errorf("info-level recorder wrote %q, want nothing", buf.String())
	}
}
