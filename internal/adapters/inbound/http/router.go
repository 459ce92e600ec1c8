// Package http serves the webhook receiver and the health endpoint.
package http

import (
	"fmt"
	"net/http"

	"github.com/architeacher/storetools/internal/adapters/inbound/http/handlers"
	"github.com/architeacher/storetools/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/usecases"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/throttled/throttled/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type RouterConfig struct {
	App            *usecases.Application
	RateLimitStore throttled.GCRAStoreCtx
	TracerProvider otelTrace.TracerProvider
	Logger         logger.Logger
	Config         *config.ServiceConfig
}

func NewRouter(cfg RouterConfig) (http.Handler, error) {
	router := chi.NewRouter()

	router.Use(middleware.RequestContext())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(chimiddleware.Timeout(cfg.Config.WebhookServer.WriteTimeout))

	if cfg.Config.Logging.AccessLog.Enabled {
		router.Use(middleware.AccessLogger(cfg.Logger, cfg.Config.Logging.AccessLog.LogHealthChecks))
	}

	if cfg.Config.ThrottledRateLimiting.Enabled && cfg.RateLimitStore != nil {
		limiter, err := middleware.ThrottledRateLimiting(cfg.Config.ThrottledRateLimiting, cfg.RateLimitStore, cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("webhook router: %w", err)
		}

		router.Use(limiter)
	}

	if cfg.Config.Webhook.Secret == "" {
		cfg.Logger.Warn().Msg("WEBHOOK_SECRET is not set, every webhook delivery will be rejected")
	}

	webhooks := handlers.NewWebhookHandler(cfg.App.Commands.HandleWebhookEvent, cfg.Logger)
	health := handlers.NewHealthHandler(cfg.App.Queries.FetchHealthReport)

	router.Get("/health", health.Health)
	router.With(middleware.WebhookSignature(cfg.Config.Webhook.Secret, cfg.Config.WebhookServer.MaxBodyBytes, cfg.Logger)).
		Post("/webhooks/*", webhooks.Receive)

	if cfg.TracerProvider == nil {
		return router, nil
	}

	return otelhttp.NewHandler(router, "webhook-server", otelhttp.WithTracerProvider(cfg.TracerProvider)), nil
}
