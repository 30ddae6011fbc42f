// Package cache stores rendered artifacts keyed by diagram content.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps one JSON entry file per key under a directory
//   - [RedisCache] shares entries between processes through Redis
//
// Keys are derived by a [Keyer] from the SHA-256 [Hash] of the input diagram
// and every option that changes the output, so a changed diagram or option
// never serves a stale artifact.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero keeps the entry until it is deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}
