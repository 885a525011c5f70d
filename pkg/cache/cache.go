// Package cache stores solved factorizations so repeated requests skip the
// root finder.
//
// # Backends
//
//   - [MemoryCache]: bounded LRU for the REPL and the HTTP server
//   - [FileCache]: one JSON file per entry, shared across CLI invocations
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Values are opaque bytes; callers choose the encoding. Keys come from
// [Key], which hashes the parts that determine a result.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
//
// Implementations are safe for concurrent use. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	// Get returns the value stored under key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}
