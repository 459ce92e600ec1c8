package decorator

import (
	"context"
	"time"
)

type (
	// CacheStatus represents the outcome of a cache lookup.
	CacheStatus string

	cacheStatusKey struct{}

	cacheStatusRecorder struct {
		status CacheStatus
	}

	// CacheConfig holds configuration for the caching decorator.
	CacheConfig struct {
		Enabled bool
		TTL     time.Duration
	}

	// CacheGetter retrieves items from cache.
	CacheGetter[Q Query, R Result] interface {
		Get(ctx context.Context, query Q) (R, bool, error)
	}

	// CacheSetter stores items in cache.
	CacheSetter[Q Query, R Result] interface {
		Set(ctx context.Context, query Q, result R, ttl time.Duration) error
	}

	// Cache combines getter and setter operations.
	Cache[Q Query, R Result] interface {
		CacheGetter[Q, R]
		CacheSetter[Q, R]
	}

	// Cacheable lets a query opt out of caching or override the configured TTL.
	Cacheable interface {
		Cacheable() bool
		CacheTTL() time.Duration
	}

	queryCachingDecorator[Q Query, R Result] struct {
		base   QueryHandler[Q, R]
		cache  Cache[Q, R]
		config CacheConfig
	}
)

const (
	CacheStatusHit    CacheStatus = "HIT"
	CacheStatusMiss   CacheStatus = "MISS"
	CacheStatusBypass CacheStatus = "BYPASS"
	CacheStatusError  CacheStatus = "ERROR"
)

// TrackCacheStatus attaches a recorder so that outer decorators can read the status
// set by an inner caching decorator.
func TrackCacheStatus(ctx context.Context) context.Context {
	if _, ok := ctx.Value(cacheStatusKey{}).(*cacheStatusRecorder); ok {
		return ctx
	}

	return context.WithValue(ctx, cacheStatusKey{}, &cacheStatusRecorder{status: CacheStatusBypass})
}

// GetCacheStatus returns the recorded status, BYPASS when nothing was recorded.
func GetCacheStatus(ctx context.Context) CacheStatus {
	if recorder, ok := ctx.Value(cacheStatusKey{}).(*cacheStatusRecorder); ok {
		return recorder.status
	}

	return CacheStatusBypass
}

func setCacheStatus(ctx context.Context, status CacheStatus) {
	if recorder, ok := ctx.Value(cacheStatusKey{}).(*cacheStatusRecorder); ok {
		recorder.status = status
	}
}

// NewQueryCachingDecorator wraps base with a cache-aside read path. The result is
// stored before Execute returns, so a following call observes it.
func NewQueryCachingDecorator[Q Query, R Result](
	base QueryHandler[Q, R],
	cache Cache[Q, R],
	config CacheConfig,
) QueryHandler[Q, R] {
	return queryCachingDecorator[Q, R]{
		base:   base,
		cache:  cache,
		config: config,
	}
}

func (d queryCachingDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	var zero R

	ttl := d.config.TTL
	cacheable := d.config.Enabled && d.cache != nil

	if c, ok := any(query).(Cacheable); ok && cacheable {
		cacheable = c.Cacheable()
		if c.CacheTTL() > 0 {
			ttl = c.CacheTTL()
		}
	}

	if !cacheable {
		setCacheStatus(ctx, CacheStatusBypass)

		return d.base.Execute(ctx, query)
	}

	cached, hit, err := d.cache.Get(ctx, query)
	if err == nil && hit {
		setCacheStatus(ctx, CacheStatusHit)

		return cached, nil
	}

	result, err := d.base.Execute(ctx, query)
	if err != nil {
		setCacheStatus(ctx, CacheStatusMiss)

		return zero, err
	}

	if err := d.cache.Set(ctx, query, result, ttl); err != nil {
		setCacheStatus(ctx, CacheStatusError)

		return result, nil
	}

	setCacheStatus(ctx, CacheStatusMiss)

	return result, nil
}
