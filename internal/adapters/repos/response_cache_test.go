package repos_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/architeacher/storetools/internal/adapters/repos"
	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/infrastructure"
	"github.com/architeacher/storetools/internal/mocks"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type backend struct {
	name  string
	build func(t *testing.T) (ports.CacheStore, func(time.Duration))
}

func backends() []backend {
	return []backend{
		{
			name: "memory",
			build: func(_ *testing.T) (ports.CacheStore, func(time.Duration)) {
				now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
				store := infrastructure.NewMemoryStore(infrastructure.WithClock(func() time.Time { return now }))

				return store, func(d time.Duration) { now = now.Add(d) }
			},
		},
		{
			name: "redis",
			build: func(t *testing.T) (ports.CacheStore, func(time.Duration)) {
				server := miniredis.RunT(t)

				client, err := infrastructure.NewKeyDBClient(config.Cache{
					RedisURL:  "redis://" + server.Addr(),
					ScanCount: 10,
				}, logger.NewTestLogger())
				require.NoError(t, err)
				t.Cleanup(func() { _ = client.Close() })

				return client, server.FastForward
			},
		},
	}
}

type ResponseCacheTestSuite struct {
	suite.Suite

	backend backend
	cache   *repos.ResponseCache
	advance func(time.Duration)
}

func TestResponseCache(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			suite.Run(t, &ResponseCacheTestSuite{backend: b})
		})
	}
}

func (s *ResponseCacheTestSuite) SetupTest() {
	store, advance := s.backend.build(s.T())

	s.cache = repos.NewResponseCache(store, 5*time.Minute, logger.NewTestLogger())
	s.advance = advance
}

func (s *ResponseCacheTestSuite) TestSetThenGetReturnsEqualValue() {
	ctx := context.Background()
	value := json.RawMessage(`{"id":12,"name":"Hoodie","tags":["a","b"]}`)

	s.cache.Set(ctx, "storetools:v1:products:item:12", value, time.Minute)

	got, ok := s.cache.Get(ctx, "storetools:v1:products:item:12")
	s.Require().True(ok)
	s.Require().JSONEq(string(value), string(got))
}

func (s *ResponseCacheTestSuite) TestEntryIsAbsentAfterTTL() {
	ctx := context.Background()

	s.cache.Set(ctx, "k", json.RawMessage(`1`), time.Minute)
	s.advance(61 * time.Second)

	_, ok := s.cache.Get(ctx, "k")
	s.Require().False(ok)
}

func (s *ResponseCacheTestSuite) TestDefaultTTLApplies() {
	ctx := context.Background()

	s.cache.Set(ctx, "k", json.RawMessage(`1`), 0)

	s.advance(4 * time.Minute)
	_, ok := s.cache.Get(ctx, "k")
	s.Require().True(ok)

	s.advance(2 * time.Minute)
	_, ok = s.cache.Get(ctx, "k")
	s.Require().False(ok)
}

func (s *ResponseCacheTestSuite) TestInvalidatePatternLeavesOtherKeys() {
	ctx := context.Background()

	s.cache.Set(ctx, "p1", json.RawMessage(`1`), time.Minute)
	s.cache.Set(ctx, "p2", json.RawMessage(`2`), time.Minute)
	s.cache.Set(ctx, "other", json.RawMessage(`3`), time.Minute)

	s.cache.Invalidate(ctx, "p*")

	_, ok := s.cache.Get(ctx, "p1")
	s.Require().False(ok)

	_, ok = s.cache.Get(ctx, "p2")
	s.Require().False(ok)

	got, ok := s.cache.Get(ctx, "other")
	s.Require().True(ok)
	s.Require().Equal("3", string(got))
}

func (s *ResponseCacheTestSuite) TestInvalidateExactKeyOnly() {
	ctx := context.Background()

	s.cache.Set(ctx, "storetools:v1:orders:item:1", json.RawMessage(`{}`), time.Minute)
	s.cache.Set(ctx, "storetools:v1:orders:item:10", json.RawMessage(`{}`), time.Minute)

	s.cache.Invalidate(ctx, "storetools:v1:orders:item:1")

	_, ok := s.cache.Get(ctx, "storetools:v1:orders:item:1")
	s.Require().False(ok)

	_, ok = s.cache.Get(ctx, "storetools:v1:orders:item:10")
	s.Require().True(ok)
}

func (s *ResponseCacheTestSuite) TestInvalidateEntityAndCollection() {
	ctx := context.Background()

	s.cache.Set(ctx, "storetools:v1:products:item:5", json.RawMessage(`{}`), time.Minute)
	s.cache.Set(ctx, "storetools:v1:products:list:aaaa", json.RawMessage(`[]`), time.Minute)
	s.cache.Set(ctx, "storetools:v1:products:list:bbbb", json.RawMessage(`[]`), time.Minute)
	s.cache.Set(ctx, "storetools:v1:orders:list:cccc", json.RawMessage(`[]`), time.Minute)

	s.cache.Invalidate(ctx, "storetools:v1:products:item:5", "storetools:v1:products:list:*", "")

	for _, key := range []string{
		"storetools:v1:products:item:5",
		"storetools:v1:products:list:aaaa",
		"storetools:v1:products:list:bbbb",
	} {
		_, ok := s.cache.Get(ctx, key)
		s.Require().False(ok, key)
	}

	_, ok := s.cache.Get(ctx, "storetools:v1:orders:list:cccc")
	s.Require().True(ok)
}

func TestResponseCache_StoreFailuresAreSwallowedAndLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	refused := errors.New("connection refused")

	store := &mocks.FakeCacheStore{}
	store.GetReturns(nil, false, refused)
	store.SetReturns(refused)
	store.DeleteReturns(refused)
	store.DeleteByPrefixReturns(0, refused)

	ctx := context.Background()
	cache := repos.NewResponseCache(store, time.Minute, logger.NewBufferedTestLogger(&buf))

	_, ok := cache.Get(ctx, "k")
	require.False(t, ok)

	cache.Set(ctx, "k", json.RawMessage(`1`), time.Minute)
	cache.Invalidate(ctx, "a", "b*", "c*")

	out := buf.String()
	require.Contains(t, out, `cache get \"k\": connection refused`)
	require.Contains(t, out, `cache set \"k\": connection refused`)
	require.Contains(t, out, "3 errors occurred")

	require.Equal(t, 1, store.DeleteCallCount())
	require.Equal(t, 2, store.DeleteByPrefixCallCount())

	_, prefix := store.DeleteByPrefixArgsForCall(0)
	require.Equal(t, "b", prefix)
}

func TestResponseCache_CorruptEntryIsAMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := infrastructure.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "k", []byte("{not json"), time.Minute))

	cache := repos.NewResponseCache(store, time.Minute, logger.NewTestLogger())

	_, ok := cache.Get(ctx, "k")
	require.False(t, ok)

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestResponseCache_InvalidateLogsWithCallContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := logger.WithToolCall(context.Background(), "update_product", "call-9")
	store := infrastructure.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "storetools:v1:products:list:aaaa", []byte(`[]`), time.Minute))
	require.NoError(t, store.Set(ctx, "storetools:v1:products:list:bbbb", []byte(`[]`), time.Minute))

	cache := repos.NewResponseCache(store, time.Minute, logger.NewBufferedTestLogger(&buf))
	cache.Invalidate(ctx, "storetools:v1:products:item:3", "storetools:v1:products:list:*")

	entries, err := logger.DecodeEntries(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "debug", entries[0]["level"])
	require.Equal(t, "cache invalidated", entries[0]["message"])
	require.Equal(t, "update_product", entries[0]["tool"])
	require.InDelta(t, 2, entries[0]["removed_by_prefix"], 0)
}
