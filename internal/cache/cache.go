package cache

import "context"

// Cache stores JSON-encoded values. Both backends share the serialization,
// so handlers behave identically whichever one is wired in.
type Cache interface {
	// Get unmarshals the cached value into dest and reports whether the key
	// was present.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	// Clear drops every key managed by this cache.
	Clear(ctx context.Context) error
	Close() error
}
