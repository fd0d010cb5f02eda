package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/koljapluemer/canvasgrid/internal/config"
	"github.com/koljapluemer/canvasgrid/pkg/cache"
)

func TestFileCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	c := New(&bytes.Buffer{}, log.InfoLevel)

	dir, err := c.fileCacheDir()
	if err != nil {
		t.Fatalf("fileCacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("fileCacheDir() = %q, want %q", dir, want)
	}

	c.Config.Cache.Dir = "/srv/cg"
	if dir, _ := c.fileCacheDir(); dir != "/srv/cg" {
		t.Errorf("fileCacheDir() with configured dir = %q, want /srv/cg", dir)
	}
}

func TestFileCacheDirOtherBackend(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.Config.Cache = config.Cache{Backend: cache.BackendRedis, RedisURL: "redis://localhost:6379"}
	if _, err := c.fileCacheDir(); err == nil {
		t.Error("fileCacheDir() should fail for the redis backend")
	}
}

func TestCacheClear(t *testing.T) {
	input := writeCanvas(t)
	out := filepath.Join(t.TempDir(), "g")
	cacheHome := t.TempDir()

	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.Config.Cache.Dir = filepath.Join(cacheHome, appName)
	opts := c.Config.PipelineOptions()
	opts.Formats = []string{"txt"}
	if err := c.runLayout(t.Context(), input, opts, layoutFlags{output: out}); err != nil {
		t.Fatalf("runLayout() error: %v", err)
	}

	fc, err := cache.NewFileCache(c.Config.Cache.Dir)
	if err != nil {
		t.Fatal(err)
	}
	n, err := fc.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n == 0 {
		t.Error("Clear() removed nothing after a cached layout run")
	}
}
