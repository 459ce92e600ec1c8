package repos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases/queries"
)

// ReadQueryCacheAdapter adapts ResponseCache for ReadUpstreamQuery, keyed by the
// query's CacheKey.
type ReadQueryCacheAdapter struct {
	cache ports.ResponseCache
}

func NewReadQueryCacheAdapter(cache ports.ResponseCache) *ReadQueryCacheAdapter {
	return &ReadQueryCacheAdapter{cache: cache}
}

func (a *ReadQueryCacheAdapter) Get(ctx context.Context, query queries.ReadUpstreamQuery) (json.RawMessage, bool, error) {
	value, hit := a.cache.Get(ctx, query.CacheKey)

	return value, hit, nil
}

func (a *ReadQueryCacheAdapter) Set(ctx context.Context, query queries.ReadUpstreamQuery, result json.RawMessage, ttl time.Duration) error {
	a.cache.Set(ctx, query.CacheKey, result, ttl)

	return nil
}
