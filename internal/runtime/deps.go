package runtime

import (
	"context"
	"fmt"
	"net/http"

	"github.com/architeacher/storetools/internal/adapters/repos"
	"github.com/architeacher/storetools/internal/adapters/services"
	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases"
	"github.com/architeacher/storetools/internal/usecases/tools"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/metrics"
	"github.com/throttled/throttled/v2"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	infrastructureDep struct {
		webhookServer  *http.Server
		httpClient     *http.Client
		cacheStore     ports.CacheStore
		logger         logger.Logger
		metricsClient  metrics.Client
		tracerProvider otelTrace.TracerProvider
	}

	repositories struct {
		secretsRepo    ports.SecretsRepository
		responseCache  *repos.ResponseCache
		rateLimitStore throttled.GCRAStoreCtx
	}

	servicesDep struct {
		commerce      ports.RESTUpstream
		upstreams     ports.Upstreams
		healthChecker ports.HealthChecker
		webhooks      *services.WebhookService
	}

	applications struct {
		app     *usecases.Application
		catalog *tools.Catalog
	}

	dependencies struct {
		config       *config.ServiceConfig
		configLoader *config.Loader

		infra infrastructureDep

		repos repositories

		services servicesDep

		apps applications

		cleanupOrder []string
		cleanupFuncs map[string]func(ctx context.Context) error
	}

	DependencyOption func(*dependencies) error
)

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*dependencies, error) {
	deps := &dependencies{
		cleanupFuncs: make(map[string]func(ctx context.Context) error),
	}

	allOpts := append(defaultOptions(ctx), opts...)

	for _, opt := range allOpts {
		if err := opt(deps); err != nil {
			deps.cleanup(ctx)

			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	return deps, nil
}

func (d *dependencies) onCleanup(resource string, fn func(ctx context.Context) error) {
	if _, ok := d.cleanupFuncs[resource]; !ok {
		d.cleanupOrder = append(d.cleanupOrder, resource)
	}

	d.cleanupFuncs[resource] = fn
}

// cleanup releases resources in reverse registration order.
func (d *dependencies) cleanup(ctx context.Context) {
	for i := len(d.cleanupOrder) - 1; i >= 0; i-- {
		resource := d.cleanupOrder[i]

		if err := d.cleanupFuncs[resource](ctx); err != nil {
			d.infra.logger.Error().
				Err(err).
				Str("resource", resource).
				Msg("failed to shutdown the resource gracefully")
		}
	}

	d.cleanupOrder = nil
	clear(d.cleanupFuncs)
}
