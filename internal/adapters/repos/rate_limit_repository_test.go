package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/architeacher/storetools/internal/adapters/repos"
	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/infrastructure"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/stretchr/testify/require"
	"github.com/throttled/throttled/v2"
)

func TestRateLimitStore_Redis(t *testing.T) {
	t.Parallel()

	server := miniredis.RunT(t)

	client, err := infrastructure.NewKeyDBClient(config.Cache{RedisURL: "redis://" + server.Addr()}, logger.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store, err := repos.NewRateLimitStore(client, 100)
	require.NoError(t, err)

	ctx := context.Background()

	value, _, err := store.GetWithTime(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, int64(-1), value)

	set, err := store.SetIfNotExistsWithTTL(ctx, "ip:10.0.0.1", 10, time.Minute)
	require.NoError(t, err)
	require.True(t, set)
	require.True(t, server.Exists(repos.RateLimitKeyPrefix+"ip:10.0.0.1"))
	require.Equal(t, "storetools:v1:ratelimit:ip:10.0.0.1", repos.RateLimitKeyPrefix+"ip:10.0.0.1")

	set, err = store.SetIfNotExistsWithTTL(ctx, "ip:10.0.0.1", 20, time.Minute)
	require.NoError(t, err)
	require.False(t, set)

	swapped, err := store.CompareAndSwapWithTTL(ctx, "ip:10.0.0.1", 10, 30, time.Minute)
	require.NoError(t, err)
	require.True(t, swapped)

	swapped, err = store.CompareAndSwapWithTTL(ctx, "ip:10.0.0.1", 10, 40, time.Minute)
	require.NoError(t, err)
	require.False(t, swapped)

	value, _, err = store.GetWithTime(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, int64(30), value)
}

func TestRateLimitStore_LimitsWithGCRA(t *testing.T) {
	t.Parallel()

	store, err := repos.NewRateLimitStore(infrastructure.NewMemoryStore(), 10)
	require.NoError(t, err)
	_, shared := store.(*repos.RateLimitStore)
	require.False(t, shared)

	limiter, err := throttled.NewGCRARateLimiterCtx(store, throttled.RateQuota{
		MaxRate:  throttled.PerMin(1),
		MaxBurst: 1,
	})
	require.NoError(t, err)

	ctx := context.Background()

	for range 2 {
		limited, _, err := limiter.RateLimitCtx(ctx, "webhook", 1)
		require.NoError(t, err)
		require.False(t, limited)
	}

	limited, _, err := limiter.RateLimitCtx(ctx, "webhook", 1)
	require.NoError(t, err)
	require.True(t, limited)
}

func TestRateLimitStore_QuotasSurviveCacheInvalidation(t *testing.T) {
	t.Parallel()

	server := miniredis.RunT(t)

	client, err := infrastructure.NewKeyDBClient(config.Cache{RedisURL: "redis://" + server.Addr()}, logger.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store, err := repos.NewRateLimitStore(client, 100)
	require.NoError(t, err)
	require.IsType(t, &repos.RateLimitStore{}, store)

	ctx := context.Background()

	_, err = store.SetIfNotExistsWithTTL(ctx, "ip:10.0.0.2", 7, time.Minute)
	require.NoError(t, err)

	cache := repos.NewResponseCache(client, time.Minute, logger.NewTestLogger())
	cache.Invalidate(ctx, "storetools:v1:products:*")

	value, _, err := store.GetWithTime(ctx, "ip:10.0.0.2")
	require.NoError(t, err)
	require.Equal(t, int64(7), value)
}
