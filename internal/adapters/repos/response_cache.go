package repos

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/hashicorp/go-multierror"
)

const patternWildcard = "*"

// ResponseCache keeps upstream JSON responses in a CacheStore. Store failures are
// logged and swallowed: a failed read is a miss, a failed write or invalidation
// leaves the entry to expire by TTL.
type ResponseCache struct {
	store      ports.CacheStore
	logger     logger.Logger
	defaultTTL time.Duration
}

var _ ports.ResponseCache = (*ResponseCache)(nil)

func NewResponseCache(store ports.CacheStore, defaultTTL time.Duration, log logger.Logger) *ResponseCache {
	return &ResponseCache{
		store:      store,
		logger:     log,
		defaultTTL: defaultTTL,
	}
}

func (c *ResponseCache) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.warn(ctx, &model.CacheError{Op: "get", Key: key, Err: err})

		return nil, false
	}

	if !found {
		return nil, false
	}

	if !json.Valid(data) {
		c.warn(ctx, &model.CacheError{Op: "decode", Key: key, Err: errCorruptEntry})
		_ = c.store.Delete(ctx, key)

		return nil, false
	}

	return json.RawMessage(data), true
}

// Set stores value under key. A non-positive ttl uses the default TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		c.warn(ctx, &model.CacheError{Op: "set", Key: key, Err: err})
	}
}

// Invalidate removes exact keys and every key under a "prefix*" pattern. All targets
// are attempted; failures are aggregated into one warning.
func (c *ResponseCache) Invalidate(ctx context.Context, keysOrPatterns ...string) {
	var (
		result  *multierror.Error
		exact   []string
		removed int
	)

	for _, target := range keysOrPatterns {
		if target == "" {
			continue
		}

		prefix, isPattern := strings.CutSuffix(target, patternWildcard)
		if !isPattern {
			exact = append(exact, target)

			continue
		}

		n, err := c.store.DeleteByPrefix(ctx, prefix)
		if err != nil {
			result = multierror.Append(result, &model.CacheError{Op: "invalidate", Key: target, Err: err})

			continue
		}

		removed += n
	}

	if len(exact) > 0 {
		if err := c.store.Delete(ctx, exact...); err != nil {
			result = multierror.Append(result, &model.CacheError{Op: "delete", Key: strings.Join(exact, ","), Err: err})
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		c.warn(ctx, err)

		return
	}

	log := c.logger.WithContext(ctx)
	log.Debug().
		Strs("targets", keysOrPatterns).
		Int("removed_by_prefix", removed).
		Msg("cache invalidated")
}

func (c *ResponseCache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func (c *ResponseCache) warn(ctx context.Context, err error) {
	log := c.logger.WithContext(ctx)
	log.Warn().Err(err).Msg("cache operation failed")
}
