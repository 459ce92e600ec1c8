package decorator

import (
	"context"

	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Query  any
	Result any

	QueryHandler[Q Query, R Result] interface {
		Execute(ctx context.Context, query Q) (R, error)
	}
)

func ApplyQueryDecorators[Q Query, R Result](
	handler QueryHandler[Q, R],
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) QueryHandler[Q, R] {
	return queryLoggingDecorator[Q, R]{
		base: queryMetricsDecorator[Q, R]{
			base: queryTracingDecorator[Q, R]{
				base:           handler,
				tracerProvider: tracerProvider,
			},
			client: metricsClient,
		},
		logger: log,
	}
}

// ApplyCachedQueryDecorators places the cache-aside decorator innermost, so cache
// hits still pass through logging, metrics and tracing.
func ApplyCachedQueryDecorators[Q Query, R Result](
	handler QueryHandler[Q, R],
	cache Cache[Q, R],
	cacheConfig CacheConfig,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) QueryHandler[Q, R] {
	return ApplyQueryDecorators[Q, R](
		NewQueryCachingDecorator[Q, R](handler, cache, cacheConfig),
		log,
		metricsClient,
		tracerProvider,
	)
}
