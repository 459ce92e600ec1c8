package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/logger"
)

const (
	webhooksEndpoint = "webhooks"
	webhookName      = "storetools"
	maxPerPage       = 100
)

type (
	// Webhook is a subscription as the commerce API reports it.
	Webhook struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Status      string `json:"status"`
		Topic       string `json:"topic"`
		DeliveryURL string `json:"delivery_url"`
	}

	// WebhookSetup lists the subscriptions created and those that already existed.
	WebhookSetup struct {
		Created  []Webhook `json:"created"`
		Existing []Webhook `json:"existing"`
	}

	// WebhookService registers the default webhook subscriptions on the commerce platform.
	WebhookService struct {
		commerce ports.BatchUpstream
		cfg      config.Webhook
		log      logger.Logger
	}
)

func NewWebhookService(commerce ports.BatchUpstream, cfg config.Webhook, log logger.Logger) *WebhookService {
	return &WebhookService{commerce: commerce, cfg: cfg, log: log.Component("webhooks")}
}

// DeliveryURL maps "order.created" to <base>/webhooks/order/created.
func (s *WebhookService) DeliveryURL(topic string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/webhooks/" + strings.ReplaceAll(topic, ".", "/")
}

func (s *WebhookService) List(ctx context.Context) ([]Webhook, error) {
	resp, err := s.commerce.Get(ctx, webhooksEndpoint, map[string]any{"per_page": maxPerPage})
	if err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}

	var webhooks []Webhook
	if err := json.Unmarshal(resp.Data, &webhooks); err != nil {
		return nil, fmt.Errorf("decoding webhooks: %w", err)
	}

	return webhooks, nil
}

// Setup creates one active subscription per configured topic in a single batch
// request. Topics already delivered to the same URL are left untouched.
func (s *WebhookService) Setup(ctx context.Context) (*WebhookSetup, error) {
	if s.cfg.BaseURL == "" {
		return nil, &model.ConfigError{Field: "WEBHOOK_BASE_URL", Reason: "is required to register webhooks"}
	}

	if s.cfg.Secret == "" {
		return nil, &model.ConfigError{Field: "WEBHOOK_SECRET", Reason: "is required to register webhooks"}
	}

	current, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	registered := make(map[string]Webhook, len(current))
	for _, webhook := range current {
		registered[webhook.Topic+" "+webhook.DeliveryURL] = webhook
	}

	setup := &WebhookSetup{}

	create := make([]map[string]any, 0, len(s.cfg.Topics))

	for _, topic := range s.cfg.Topics {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}

		deliveryURL := s.DeliveryURL(topic)

		if existing, ok := registered[topic+" "+deliveryURL]; ok {
			setup.Existing = append(setup.Existing, existing)

			continue
		}

		create = append(create, map[string]any{
			"name":         fmt.Sprintf("%s %s", webhookName, topic),
			"topic":        topic,
			"delivery_url": deliveryURL,
			"secret":       s.cfg.Secret,
			"status":       "active",
		})
	}

	if len(create) == 0 {
		s.log.Info().Int("existing", len(setup.Existing)).Msg("webhooks already registered")

		return setup, nil
	}

	resp, err := s.commerce.Batch(ctx, webhooksEndpoint, map[string]any{"create": create})
	if err != nil {
		return nil, fmt.Errorf("creating webhooks: %w", err)
	}

	var result struct {
		Create []Webhook `json:"create"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("decoding created webhooks: %w", err)
	}

	setup.Created = result.Create

	s.log.Info().
		Int("created", len(setup.Created)).
		Int("existing", len(setup.Existing)).
		Msg("webhooks registered")

	return setup, nil
}
