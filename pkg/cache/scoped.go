package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. The HTTP server uses
// it to keep its stored results apart from CLI entries in a shared backend.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey returns the prefixed layout key.
func (k *ScopedKeyer) LayoutKey(canvasHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(canvasHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// ResultKey returns the prefixed result key.
func (k *ScopedKeyer) ResultKey(id string) string {
	return k.prefix + k.inner.ResultKey(id)
}
