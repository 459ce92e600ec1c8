package commands

import (
	"context"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"github.com/architeacher/storetools/pkg/decorator"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	// WebhookEventCommand is a verified platform delivery, e.g. order.updated for id 9.
	WebhookEventCommand struct {
		Resource string
		Action   string
		ID       int
	}

	// WebhookEventResult lists what was dropped from the cache. Cached is false
	// when the resource has no keyspace.
	WebhookEventResult struct {
		Cached      bool
		Invalidated []string
	}

	HandleWebhookEventCommandHandler = decorator.CommandHandler[WebhookEventCommand, WebhookEventResult]

	handleWebhookEventCommandHandler struct {
		cache ports.ResponseCache
	}
)

func (c WebhookEventCommand) ActionName() string {
	return "webhook_" + c.Resource + "_" + c.Action
}

func NewHandleWebhookEventCommandHandler(
	cache ports.ResponseCache,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) HandleWebhookEventCommandHandler {
	return decorator.ApplyCommandDecorators[WebhookEventCommand, WebhookEventResult](
		handleWebhookEventCommandHandler{cache: cache},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h handleWebhookEventCommandHandler) Handle(ctx context.Context, cmd WebhookEventCommand) (WebhookEventResult, error) {
	targets, known := keyspaces.InvalidationForEvent(cmd.Resource, cmd.ID)
	if !known {
		return WebhookEventResult{}, nil
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx, targets...)
	}

	return WebhookEventResult{Cached: true, Invalidated: targets}, nil
}
