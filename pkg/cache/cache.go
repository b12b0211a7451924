// Package cache stores imported histogram sets between runs.
//
// Parsing and binning a large CSV file dominates the run time of a
// histoprint invocation, while rendering is cheap. The cache maps the hash
// of the raw input plus the import options to the binned set, so repeated
// renders of the same file with different display options skip the import.
//
// Implementations:
//   - [FileCache]: one JSON file per entry under a directory (CLI use)
//   - [NullCache]: stores nothing
//
// Cache failures are never fatal to callers: a read error is a miss and a
// failed write is dropped.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long imported sets stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. ok is false on a miss or when the
	// entry has expired.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
