package queries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/decorator"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/metrics"
	"github.com/architeacher/storetools/pkg/retry"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	// ReadUpstreamQuery is one GET against an upstream. An empty CacheKey bypasses the cache.
	ReadUpstreamQuery struct {
		Tool     string
		Upstream string
		Path     string
		Params   map[string]any
		CacheKey string
		TTL      time.Duration
	}

	ReadUpstreamQueryHandler = decorator.QueryHandler[ReadUpstreamQuery, json.RawMessage]

	readUpstreamQueryHandler struct {
		upstreams ports.Upstreams
		retryOpts []retry.Option
	}
)

func (q ReadUpstreamQuery) ActionName() string {
	return q.Tool
}

func (q ReadUpstreamQuery) Cacheable() bool {
	return q.CacheKey != ""
}

func (q ReadUpstreamQuery) CacheTTL() time.Duration {
	return q.TTL
}

// NewReadUpstreamQueryHandler builds the cache-aside read path: a cache lookup, then
// on a miss the retried upstream GET whose result is stored before returning.
func NewReadUpstreamQueryHandler(
	upstreams ports.Upstreams,
	cache decorator.Cache[ReadUpstreamQuery, json.RawMessage],
	cacheConfig decorator.CacheConfig,
	retryOpts []retry.Option,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ReadUpstreamQueryHandler {
	return decorator.ApplyCachedQueryDecorators[ReadUpstreamQuery, json.RawMessage](
		readUpstreamQueryHandler{upstreams: upstreams, retryOpts: retryOpts},
		cache,
		cacheConfig,
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h readUpstreamQueryHandler) Execute(ctx context.Context, query ReadUpstreamQuery) (json.RawMessage, error) {
	upstream, err := h.upstreams.Lookup(query.Upstream)
	if err != nil {
		return nil, err
	}

	return retry.Do(ctx, func(ctx context.Context) (json.RawMessage, error) {
		resp, err := upstream.Get(ctx, query.Path, query.Params)
		if err != nil {
			return nil, err
		}

		return resp.Data, nil
	}, h.retryOpts...)
}
