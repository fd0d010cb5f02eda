// Package config loads canvasgrid settings from a TOML file.
//
// The file is looked up in order:
//
//  1. $CANVASGRID_CONFIG
//  2. ./canvasgrid.toml
//  3. $XDG_CONFIG_HOME/canvasgrid/config.toml (or ~/.config/canvasgrid/config.toml)
//
// A missing file is not an error; [Default] values apply. Keys left out of
// a file keep their defaults.
//
// Example file:
//
//	[layout]
//	seed = 7
//	max_attempts = 128
//	purge = true
//
//	[render]
//	formats = ["flow", "html"]
//	cell_size = 24
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/koljapluemer/canvasgrid/pkg/cache"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/pipeline"
)

const (
	appName = "canvasgrid"

	// EnvPath names the environment variable that points at a config file.
	EnvPath = "CANVASGRID_CONFIG"

	// LocalFile is the config file name looked up in the working directory.
	LocalFile = "canvasgrid.toml"

	// DefaultAddr is the listen address of the HTTP API.
	DefaultAddr = ":8080"
)

// Config is the full set of file settings.
type Config struct {
	Layout Layout `toml:"layout"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// Layout holds the [layout] section.
type Layout struct {
	Seed        uint64 `toml:"seed"`
	MaxAttempts int    `toml:"max_attempts"`
	Purge       bool   `toml:"purge"`
}

// Render holds the [render] section.
type Render struct {
	Formats  []string `toml:"formats"`
	CellSize int      `toml:"cell_size"`
	Title    string   `toml:"title"`
}

// Cache holds the [cache] section.
type Cache struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Server holds the [server] section.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: Layout{
			Seed:        pipeline.DefaultSeed,
			MaxAttempts: pipeline.DefaultMaxAttempts,
			Purge:       true,
		},
		Render: Render{
			Formats:  []string{pipeline.DefaultFormat},
			CellSize: pipeline.DefaultCellSize,
		},
		Cache:  Cache{Backend: cache.BackendFile},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load reads the first config file found in the lookup order. When path is
// not empty it is read directly and must exist.
func Load(path string) (Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return Default(), nil
}

// LoadFile reads one TOML file on top of the defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.Layout.MaxAttempts < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "layout.max_attempts must not be negative")
	}
	if c.Render.CellSize < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "render.cell_size must not be negative")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendRedis, cache.BackendMongo:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "cache.backend %q is not one of none, file, redis, mongo", c.Cache.Backend)
	}
	return nil
}

// SearchPaths returns the candidate config files in lookup order.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, LocalFile)
	if dir, err := Dir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.toml"))
	}
	return paths
}

// Dir returns the per-user config directory using the XDG convention.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns the default file cache directory
// ($XDG_CACHE_HOME/canvasgrid or ~/.cache/canvasgrid).
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// CacheConfig converts the [cache] section for [cache.Open]. An empty file
// cache directory resolves to [CacheDir].
func (c Config) CacheConfig() (cache.Config, error) {
	cc := cache.Config{
		Backend:         c.Cache.Backend,
		Dir:             c.Cache.Dir,
		RedisURL:        c.Cache.RedisURL,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
	}
	if cc.Backend == "" {
		cc.Backend = cache.BackendFile
	}
	if cc.Backend == cache.BackendFile && cc.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return cache.Config{}, err
		}
		cc.Dir = dir
	}
	return cc, nil
}

// PipelineOptions returns pipeline options seeded from the file settings.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Seed:        c.Layout.Seed,
		MaxAttempts: c.Layout.MaxAttempts,
		SkipPurge:   !c.Layout.Purge,
		Formats:     append([]string(nil), c.Render.Formats...),
		CellSize:    c.Render.CellSize,
		Title:       c.Render.Title,
	}
}
