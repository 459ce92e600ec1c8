package repos

import (
	"context"
	"time"

	"github.com/architeacher/storetools/internal/infrastructure"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/cachekey"
	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"
)

// RateLimitKeyPrefix keeps webhook quotas beside the cached responses but out of
// their keyspaces, so cache invalidation never resets a quota.
const RateLimitKeyPrefix = cachekey.Namespace + ":" + cachekey.Version + ":ratelimit:"

// RateLimitStore keeps GCRA state for webhook deliveries in redis, so every
// replica behind the same store URL shares one quota per sender.
type RateLimitStore struct {
	client *infrastructure.KeydbClient
}

// NewRateLimitStore rides on the cache store's redis connection. Any other store
// gets an in-process GCRA store holding at most maxKeys senders.
func NewRateLimitStore(store ports.CacheStore, maxKeys int) (throttled.GCRAStoreCtx, error) {
	client, ok := store.(*infrastructure.KeydbClient)
	if !ok || client == nil {
		return memstore.NewCtx(maxKeys)
	}

	return &RateLimitStore{client: client}, nil
}

// GetWithTime reads a sender's state. A sender never seen reports -1.
func (s *RateLimitStore) GetWithTime(ctx context.Context, key string) (int64, time.Time, error) {
	return s.client.GetInt64(ctx, RateLimitKeyPrefix+key)
}

func (s *RateLimitStore) SetIfNotExistsWithTTL(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error) {
	return s.client.SetInt64NX(ctx, RateLimitKeyPrefix+key, value, ttl)
}

func (s *RateLimitStore) CompareAndSwapWithTTL(ctx context.Context, key string, old, new int64, ttl time.Duration) (bool, error) {
	return s.client.CompareAndSwapInt64(ctx, RateLimitKeyPrefix+key, old, new, ttl)
}
