// Package cache provides the persistent key/value stores backing the price service.
//
// A store keeps, per key, an opaque payload and the time it was last written.
// Freshness is the caller's responsibility: the store never expires entries,
// it only overwrites them in place. Anything unreadable (missing key, corrupt
// timestamp, unreachable backend) degrades to a miss, never an error the
// caller has to handle.
package cache

import (
	"context"
	"time"
)

// Store is a keyed payload store with a last-write timestamp per key.
type Store interface {
	// Get returns the payload for key and when it was stored.
	// ok is false on any kind of miss.
	Get(ctx context.Context, key string) (payload []byte, storedAt time.Time, ok bool)

	// Put overwrites any prior value for key.
	Put(ctx context.Context, key string, payload []byte, storedAt time.Time) error
}

// Fresh reports whether an entry stored at storedAt is still usable at now
// under the given TTL.
func Fresh(storedAt, now time.Time, ttl time.Duration) bool {
	return now.Sub(storedAt) < ttl
}
