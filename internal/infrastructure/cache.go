package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/architeacher/storetools/internal/config"
	appLogger "github.com/architeacher/storetools/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type KeydbClient struct {
	client *redis.Client
	logger appLogger.Logger
	config config.Cache
}

// NewKeyDBClient connects to the redis compatible server at config.RedisURL.
func NewKeyDBClient(config config.Cache, logger appLogger.Logger) (*KeydbClient, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	if config.PoolSize > 0 {
		opts.PoolSize = int(config.PoolSize)
	}

	if config.DialTimeout > 0 {
		opts.DialTimeout = config.DialTimeout
	}

	if config.ReadTimeout > 0 {
		opts.ReadTimeout = config.ReadTimeout
	}

	if config.WriteTimeout > 0 {
		opts.WriteTimeout = config.WriteTimeout
	}

	return NewKeyDBClientFromOptions(opts, config, logger), nil
}

func NewKeyDBClientFromOptions(opts *redis.Options, config config.Cache, logger appLogger.Logger) *KeydbClient {
	if config.ScanCount <= 0 {
		config.ScanCount = 100
	}

	return &KeydbClient{
		client: redis.NewClient(opts),
		logger: logger,
		config: config,
	}
}

func (c *KeydbClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *KeydbClient) Close() error {
	return c.client.Close()
}

func (c *KeydbClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	startTime := time.Now()

	result, err := c.client.Get(ctx, key).Bytes()
	duration := time.Since(startTime)

	c.logger.Debug().
		Str("key", key).
		Int64("duration_ms", duration.Milliseconds()).
		Bool("hit", err == nil).
		Msg("keydb get operation")

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("getting %s: %w", key, err)
	}

	return result, true, nil
}

func (c *KeydbClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	startTime := time.Now()
	var err error

	defer func() {
		c.logger.Debug().
			Str("key", key).
			Str("expiry", ttl.String()).
			Int64("duration_ms", time.Since(startTime).Milliseconds()).
			Bool("success", err == nil).
			Msg("keydb set operation")
	}()

	err = c.client.Set(ctx, key, value, ttl).Err()

	return err
}

func (c *KeydbClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	startTime := time.Now()
	var err error

	defer func() {
		c.logger.Debug().
			Strs("keys", keys).
			Int64("duration_ms", time.Since(startTime).Milliseconds()).
			Bool("success", err == nil).
			Msg("keydb delete operation")
	}()

	err = c.client.Del(ctx, keys...).Err()

	return err
}

// DeleteByPrefix collects every key matching prefix with SCAN MATCH and then
// deletes them in batches of ScanCount. Keys are not deleted while the cursor is
// open, since a keyspace shrinking under the cursor can make SCAN skip keys.
func (c *KeydbClient) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	pattern := EscapeGlob(prefix) + "*"

	keys, err := c.scanAll(ctx, pattern)
	if err != nil {
		return 0, err
	}

	batchSize := int(c.config.ScanCount)
	if batchSize <= 0 {
		batchSize = len(keys)
	}

	deleted := 0

	for start := 0; start < len(keys); start += batchSize {
		end := min(start+batchSize, len(keys))

		n, err := c.client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, fmt.Errorf("deleting keys matching %s: %w", pattern, err)
		}

		deleted += int(n)
	}

	c.logger.Debug().
		Str("pattern", pattern).
		Int("matched", len(keys)).
		Int("deleted", deleted).
		Msg("keydb prefix delete")

	return deleted, nil
}

// scanAll walks the whole cursor. SCAN may return a key more than once.
func (c *KeydbClient) scanAll(ctx context.Context, pattern string) ([]string, error) {
	var (
		cursor uint64
		keys   []string
		seen   = make(map[string]struct{})
	)

	for {
		batch, next, err := c.Scan(ctx, cursor, pattern, c.config.ScanCount)
		if err != nil {
			return nil, err
		}

		for _, key := range batch {
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
			keys = append(keys, key)
		}

		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// Scan iterates over keys matching a pattern.
func (c *KeydbClient) Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, count).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("scanning keys: %w", err)
	}

	return keys, nextCursor, nil
}

// EscapeGlob escapes the characters redis MATCH treats as glob syntax.
func EscapeGlob(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '^', '\\':
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}

// GetInt64 retrieves an int64 value and the time it was read.
func (c *KeydbClient) GetInt64(ctx context.Context, key string) (int64, time.Time, error) {
	val, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, time.Now(), nil
		}

		return 0, time.Time{}, err
	}

	return val, time.Now(), nil
}

// SetInt64NX sets an int64 value if the key doesn't exist.
func (c *KeydbClient) SetInt64NX(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, value, ttl).Result()
}

var compareAndSwapScript = redis.NewScript(`
	local current = redis.call("GET", KEYS[1])
	if current == false or tonumber(current) ~= tonumber(ARGV[1]) then
		return 0
	end
	redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
	return 1
`)

// CompareAndSwapInt64 atomically updates a value if it matches the expected old value.
func (c *KeydbClient) CompareAndSwapInt64(ctx context.Context, key string, old, new int64, ttl time.Duration) (bool, error) {
	result, err := compareAndSwapScript.Run(ctx, c.client, []string{key}, old, new, ttl.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}

	return result == 1, nil
}
