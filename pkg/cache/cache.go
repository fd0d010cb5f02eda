// Package cache stores layouts and rendered artifacts between runs.
//
// Every backend implements [Cache]: [NullCache] keeps nothing, [FileCache]
// writes sharded files under a directory for the CLI, [RedisCache] and
// [MongoCache] serve the HTTP API when several instances share results.
// [Open] builds one from a [Config].
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the input together with
// every option that changes the output, so a key never outlives the
// meaning of its value. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte store with per-entry expiry. Get reports a miss with
// hit == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Time-to-live per entry kind. Layouts and artifacts are pure functions of
// their key so they live long; stored results back API ids.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
	TTLResult   = 7 * 24 * time.Hour
)

// keyVersion is mixed into every hashed key. Bump it when the serialized
// layout or an artifact format changes.
const keyVersion = 1

// LayoutKeyOpts holds the options that change a layout.
type LayoutKeyOpts struct {
	Seed        uint64 `json:"seed"`
	MaxAttempts int    `json:"max_attempts"`
	Purge       bool   `json:"purge"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	CellSize int    `json:"cell_size"`
	Title    string `json:"title,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its input canvas.
	LayoutKey(canvasHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// ResultKey keys a stored layout by its public id.
	ResultKey(id string) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(canvasHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", keyVersion, canvasHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, layoutHash, opts)
}

// ResultKey returns "result:<id>".
func (DefaultKeyer) ResultKey(id string) string {
	return "result:" + id
}

// hashKey returns "prefix:" followed by the hex SHA-256 of parts as JSON.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Canvas and layout hashes use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
