package usecases

import (
	"encoding/json"
	"time"

	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases/commands"
	"github.com/architeacher/storetools/internal/usecases/queries"
	"github.com/architeacher/storetools/pkg/decorator"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/metrics"
	"github.com/architeacher/storetools/pkg/retry"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Commands struct {
		WriteUpstream      commands.WriteUpstreamCommandHandler
		HandleWebhookEvent commands.HandleWebhookEventCommandHandler
	}

	Queries struct {
		ReadUpstream      queries.ReadUpstreamQueryHandler
		FetchHealthReport queries.FetchHealthReportQueryHandler
	}

	Application struct {
		Commands  Commands
		Queries   Queries
		TTL       config.CacheTTL
		Upstreams ports.Upstreams
	}
)

func NewApplication(
	cfg *config.ServiceConfig,
	upstreams ports.Upstreams,
	responseCache ports.ResponseCache,
	queryCache decorator.Cache[queries.ReadUpstreamQuery, json.RawMessage],
	healthChecker ports.HealthChecker,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) *Application {
	retryOpts := RetryOptions(cfg.Retry, log)

	return &Application{
		Commands: Commands{
			WriteUpstream: commands.NewWriteUpstreamCommandHandler(
				upstreams, responseCache, retryOpts, log, metricsClient, tracerProvider,
			),
			HandleWebhookEvent: commands.NewHandleWebhookEventCommandHandler(
				responseCache, log, metricsClient, tracerProvider,
			),
		},
		Queries: Queries{
			ReadUpstream: queries.NewReadUpstreamQueryHandler(
				upstreams,
				queryCache,
				decorator.CacheConfig{Enabled: cfg.Cache.Enabled, TTL: cfg.Cache.TTL.Default},
				retryOpts,
				log,
				metricsClient,
				tracerProvider,
			),
			FetchHealthReport: queries.NewFetchHealthReportQueryHandler(healthChecker, log, metricsClient, tracerProvider),
		},
		TTL:       cfg.Cache.TTL,
		Upstreams: upstreams,
	}
}

// RetryOptions retries network failures, 5xx and 429 with the configured backoff.
func RetryOptions(cfg config.Retry, log logger.Logger) []retry.Option {
	return []retry.Option{
		retry.Policy(retry.Options{
			MaxRetries:    cfg.MaxRetries,
			InitialDelay:  cfg.InitialDelay,
			BackoffFactor: cfg.BackoffFactor,
			MaxDelay:      cfg.MaxDelay,
			ShouldRetry:   retry.AnyOf(model.IsNetworkError, model.IsServerError, model.IsRateLimited),
			OnRetry: func(err error, attempt uint, delay time.Duration) {
				log.Warn().
					Err(err).
					Uint("attempt", attempt).
					Dur("delay", delay).
					Msg("retrying upstream call")
			},
		}),
	}
}
