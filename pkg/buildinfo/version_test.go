package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	stamped := debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name        string
		version     string
		commit      string
		info        debug.BuildInfo
		wantVersion string
		wantCommit  string
		wantDate    string
	}{
		{"toolchain stamps", "dev", "none", stamped, "v0.3.0", "abc123", "2026-01-02T03:04:05Z"},
		{"ldflags win", "v1.0.0", "fff", stamped, "v1.0.0", "fff", "2026-01-02T03:04:05Z"},
		{"devel build", "dev", "none", debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev", "none", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.version, tt.commit, "unknown"
			fill(&tt.info)
			if Version != tt.wantVersion || Commit != tt.wantCommit || Date != tt.wantDate {
				t.Errorf("fill() = %q/%q/%q, want %q/%q/%q", Version, Commit, Date, tt.wantVersion, tt.wantCommit, tt.wantDate)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version ") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.Contains(got, "commit: ") {
		t.Errorf("String() = %q", got)
	}
}
