package runtime

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	inboundhttp "github.com/architeacher/storetools/internal/adapters/inbound/http"
	"github.com/architeacher/storetools/internal/adapters/outbound/rest"
	"github.com/architeacher/storetools/internal/adapters/repos"
	"github.com/architeacher/storetools/internal/adapters/services"
	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/infrastructure"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases"
	"github.com/architeacher/storetools/internal/usecases/tools"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/metrics"
	"github.com/architeacher/storetools/pkg/metrics/noop"
	"go.opentelemetry.io/otel"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithSecretsRepository(),
		WithConfigLoader(ctx),
		WithConfigValidation(),
		WithMetrics(),
		WithTracing(),
		WithHTTPClient(),
		WithCacheStore(ctx),
		WithResponseCache(),
		WithUpstreams(),
		WithHealthService(),
		WithWebhookService(),
		WithApplication(),
		WithToolCatalog(),
		WithRateLimitStore(),
		WithWebhookServer(),
	}
}

// WithConfig parses the environment. Validation waits until vault secrets are applied.
func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Parse()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

// WithLogger writes to stderr; stdout carries rpc frames.
func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithSecretsRepository() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.SecretsStorage.Enabled {
			return nil
		}

		client, err := repos.NewVaultClient(d.config.SecretsStorage)
		if err != nil {
			return fmt.Errorf("creating Vault client: %w", err)
		}

		d.repos.secretsRepo = repos.NewVaultRepository(client)

		return nil
	}
}

func WithConfigLoader(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.SecretsStorage.Enabled || d.repos.secretsRepo == nil {
			return nil
		}

		loader := config.NewLoader(d.config, d.repos.secretsRepo, 0)

		version, err := loader.Load(ctx, d.repos.secretsRepo, d.config)
		if err != nil {
			return fmt.Errorf("loading secrets from Vault: %w", err)
		}

		d.configLoader = config.NewLoader(d.config, d.repos.secretsRepo, version)

		d.infra.logger.Info().Uint("version", version).Msg("secrets loaded from vault")

		return nil
	}
}

func WithConfigValidation() DependencyOption {
	return func(d *dependencies) error {
		if err := d.config.Validate(); err != nil {
			return fmt.Errorf("invalid service configuration: %w", err)
		}

		return nil
	}
}

// WithMetrics counts tool calls on the global meter provider when telemetry is enabled.
func WithMetrics() DependencyOption {
	return func(d *dependencies) error {
		if d.config.Telemetry.Enabled {
			d.infra.metricsClient = metrics.NewOTelClient(otel.GetMeterProvider().Meter(d.config.App.ServiceName))

			return nil
		}

		d.infra.metricsClient = noop.NewMetricsClient()

		return nil
	}
}

func WithTracing() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Enabled {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(d.config.App, d.config.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.onCleanup("tracer", shutdown)

		return nil
	}
}

func WithHTTPClient() DependencyOption {
	return func(d *dependencies) error {
		d.infra.httpClient = infrastructure.NewHTTPClient(d.config.HTTPClient, d.infra.tracerProvider)

		d.onCleanup("http client", func(context.Context) error {
			d.infra.httpClient.CloseIdleConnections()

			return nil
		})

		return nil
	}
}

// WithCacheStore connects to redis when configured. An unreachable server degrades
// to the in-process store so tools keep working without a cache server.
func WithCacheStore(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		log := d.infra.logger.Component("cache")

		if d.config.Cache.UseRedis {
			client, err := infrastructure.NewKeyDBClient(d.config.Cache, log)
			if err != nil {
				return fmt.Errorf("creating cache client: %w", err)
			}

			pingCtx, cancel := context.WithTimeout(ctx, d.config.Cache.DialTimeout)
			err = client.Ping(pingCtx)

			cancel()

			if err == nil {
				d.infra.cacheStore = client
				d.onCleanup("cache store", func(context.Context) error { return client.Close() })

				log.Info().Str("store", "redis").Msg("cache store ready")

				return nil
			}

			_ = client.Close()

			log.Warn().Err(err).Msg("redis is unreachable, falling back to the in-process cache")
		}

		store := infrastructure.NewMemoryStore()

		d.infra.cacheStore = store
		d.onCleanup("cache store", func(context.Context) error { return store.Close() })

		log.Info().Str("store", "memory").Msg("cache store ready")

		return nil
	}
}

func WithResponseCache() DependencyOption {
	return func(d *dependencies) error {
		d.repos.responseCache = repos.NewResponseCache(d.infra.cacheStore, d.config.Cache.TTL.Default, d.infra.logger)

		return nil
	}
}

// WithUpstreams builds the REST clients. Missing content credentials leave the
// content namespaces out instead of failing.
func WithUpstreams() DependencyOption {
	return func(d *dependencies) error {
		commerce, err := rest.NewCommerceClient(d.config, d.infra.httpClient, d.infra.logger)
		if err != nil {
			return fmt.Errorf("creating commerce client: %w", err)
		}

		d.services.commerce = commerce
		d.services.upstreams = ports.Upstreams{ports.UpstreamCommerce: commerce}

		contentClients := []struct {
			name string
			new  func(*config.ServiceConfig, *http.Client, logger.Logger) (*rest.Client, error)
		}{
			{name: ports.UpstreamContent, new: rest.NewContentClient},
			{name: ports.UpstreamYoast, new: rest.NewYoastClient},
			{name: ports.UpstreamRankMath, new: rest.NewRankMathClient},
		}

		for _, cc := range contentClients {
			client, err := cc.new(d.config, d.infra.httpClient, d.infra.logger)
			if err != nil {
				if model.IsConfigError(err) {
					d.infra.logger.Warn().Err(err).Str("upstream", cc.name).Msg("upstream disabled")

					continue
				}

				return fmt.Errorf("creating %s client: %w", cc.name, err)
			}

			d.services.upstreams[cc.name] = client
		}

		return nil
	}
}

func WithHealthService() DependencyOption {
	return func(d *dependencies) error {
		d.services.healthChecker = services.NewHealthService(
			d.repos.responseCache,
			d.services.upstreams,
			[]string{ports.UpstreamCommerce, ports.UpstreamContent},
			d.config.HTTPClient.Timeout,
		)

		return nil
	}
}

func WithWebhookService() DependencyOption {
	return func(d *dependencies) error {
		d.services.webhooks = services.NewWebhookService(d.services.commerce, d.config.Webhook, d.infra.logger)

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		d.apps.app = usecases.NewApplication(
			d.config,
			d.services.upstreams,
			d.repos.responseCache,
			repos.NewReadQueryCacheAdapter(d.repos.responseCache),
			d.services.healthChecker,
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}

func WithToolCatalog() DependencyOption {
	return func(d *dependencies) error {
		catalog, err := tools.Build(d.apps.app, d.infra.logger)
		if err != nil {
			return fmt.Errorf("building tool catalog: %w", err)
		}

		d.apps.catalog = catalog

		return nil
	}
}

func WithRateLimitStore() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.WebhookServer.Enabled || !d.config.ThrottledRateLimiting.Enabled {
			return nil
		}

		store, err := repos.NewRateLimitStore(d.infra.cacheStore, d.config.ThrottledRateLimiting.MaxKeys)
		if err != nil {
			return fmt.Errorf("creating rate limit store: %w", err)
		}

		d.repos.rateLimitStore = store

		return nil
	}
}

func WithWebhookServer() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.WebhookServer.Enabled {
			return nil
		}

		router, err := inboundhttp.NewRouter(inboundhttp.RouterConfig{
			App:            d.apps.app,
			RateLimitStore: d.repos.rateLimitStore,
			TracerProvider: d.infra.tracerProvider,
			Logger:         d.infra.logger,
			Config:         d.config,
		})
		if err != nil {
			return fmt.Errorf("creating webhook router: %w", err)
		}

		cfg := d.config.WebhookServer

		d.infra.webhookServer = &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, strconv.FormatUint(uint64(cfg.Port), 10)),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		}

		return nil
	}
}
