package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	Dir     string

	RedisURL string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open returns the backend named by cfg.Backend. An empty name means file
// when Dir is set and none otherwise.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendNone
		if cfg.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		return nonNil(NewFileCache(cfg.Dir))
	case BackendRedis:
		return nonNil(NewRedisCache(ctx, cfg.RedisURL))
	case BackendMongo:
		return nonNil(NewMongoCache(ctx, MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		}))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// nonNil keeps a failed constructor from returning a typed nil Cache.
func nonNil[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
