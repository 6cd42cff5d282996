package session

import (
	"context"
	"time"
)

// Store is the key-value contract the manager needs. Each call must be atomic
// on its own; no multi-call atomicity is assumed. Implementations return
// ErrNotFound from Get for a missing key and report connectivity failures as
// plain errors, which the manager tags with ErrStoreUnavailable.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	// LRange returns the whole list, or an empty slice for a missing key.
	LRange(ctx context.Context, key string) ([]string, error)
	LPop(ctx context.Context, key string) error
	RPush(ctx context.Context, key, value string) error
	// LRem removes every occurrence of value from the list.
	LRem(ctx context.Context, key, value string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
