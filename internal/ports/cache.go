//go:generate go tool github.com/maxbrunsfeld/counterfeiter/v6 -generate

package ports

//counterfeiter:generate -o ../mocks/cache_store.go . CacheStore
//counterfeiter:generate -o ../mocks/response_cache.go . ResponseCache

import (
	"context"
	"encoding/json"
	"time"
)

// CacheStore is the raw key/value backend behind the response cache.
type CacheStore interface {
	// Get returns found=false for absent or expired keys.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPrefix removes every key starting with prefix and reports how many were removed.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

// ResponseCache stores upstream JSON responses. It never fails the caller:
// store errors are logged and treated as misses or no-ops.
type ResponseCache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool)
	Set(ctx context.Context, key string, value json.RawMessage, ttl time.Duration)
	// Invalidate accepts exact keys and prefix patterns ending in '*'.
	Invalidate(ctx context.Context, keysOrPatterns ...string)
	Ping(ctx context.Context) error
}
