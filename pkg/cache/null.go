package cache

import (
	"context"
	"time"
)

// NullCache remembers nothing: every layout and render is computed from
// scratch. The CLI uses it for --no-cache and when the file cache cannot be
// opened.
type NullCache struct{}

// NewNullCache returns a cache on which every lookup misses.
func NewNullCache() Cache {
	return &NullCache{}
}

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
