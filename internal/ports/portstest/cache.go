package portstest

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/architeacher/storetools/internal/mocks"
)

// NewResponseCache returns a FakeResponseCache backed by a map, so reads observe
// earlier writes and invalidations. Ping answers nil until PingReturns is set.
func NewResponseCache() *mocks.FakeResponseCache {
	var (
		mu      sync.Mutex
		entries = make(map[string]json.RawMessage)
	)

	cache := &mocks.FakeResponseCache{}

	cache.GetCalls(func(_ context.Context, key string) (json.RawMessage, bool) {
		mu.Lock()
		defer mu.Unlock()

		value, ok := entries[key]

		return value, ok
	})
	cache.SetCalls(func(_ context.Context, key string, value json.RawMessage, _ time.Duration) {
		mu.Lock()
		defer mu.Unlock()

		entries[key] = value
	})
	cache.InvalidateCalls(func(_ context.Context, keysOrPatterns ...string) {
		mu.Lock()
		defer mu.Unlock()

		for _, target := range keysOrPatterns {
			prefix, isPattern := strings.CutSuffix(target, "*")
			if !isPattern {
				delete(entries, target)

				continue
			}

			for key := range entries {
				if strings.HasPrefix(key, prefix) {
					delete(entries, key)
				}
			}
		}
	})

	return cache
}

// Invalidated flattens every key and pattern passed to Invalidate, in call order.
func Invalidated(cache *mocks.FakeResponseCache) []string {
	var targets []string

	for i := range cache.InvalidateCallCount() {
		_, keysOrPatterns := cache.InvalidateArgsForCall(i)
		targets = append(targets, keysOrPatterns...)
	}

	return targets
}
