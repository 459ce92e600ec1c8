package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/architeacher/storetools/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/storetools/internal/usecases/commands"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type (
	WebhookHandler struct {
		handleEvent commands.HandleWebhookEventCommandHandler
		log         logger.Logger
	}

	// Event is a verified delivery.
	Event struct {
		Resource string `json:"resource"`
		Action   string `json:"action"`
		ID       int    `json:"id,omitempty"`
	}

	webhookResponse struct {
		Received    bool   `json:"received"`
		Event       Event  `json:"event"`
		Invalidated int    `json:"invalidated"`
		Note        string `json:"note,omitempty"`
	}
)

func NewWebhookHandler(handleEvent commands.HandleWebhookEventCommandHandler, log logger.Logger) *WebhookHandler {
	return &WebhookHandler{handleEvent: handleEvent, log: log.Component("webhooks")}
}

// Receive handles POST /webhooks/{resource}/{action}. The topic header wins over
// the path when both are present.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	event, ok := ParseTopic(r.Header.Get(middleware.WebhookTopicHeader))
	if !ok {
		event, ok = ParseTopic(strings.ReplaceAll(chi.URLParam(r, "*"), "/", "."))
	}

	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_TOPIC", "topic must look like <resource>.<action>")

		return
	}

	var payload struct {
		ID int `json:"id"`
	}

	// Registration pings are form encoded; they carry no entity.
	if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
		event.ID = payload.ID
	}

	log := h.log.WithContext(r.Context())

	result, err := h.handleEvent.Handle(r.Context(), commands.WebhookEventCommand{
		Resource: event.Resource,
		Action:   event.Action,
		ID:       event.ID,
	})
	if err != nil {
		log.Error().Err(err).Str("resource", event.Resource).Msg("webhook delivery failed")
		writeError(w, http.StatusInternalServerError, "WEBHOOK_FAILED", "delivery could not be processed")

		return
	}

	if !result.Cached {
		log.Info().Str("resource", event.Resource).Str("action", event.Action).Msg("webhook for an uncached resource")
		writeJSON(w, http.StatusOK, webhookResponse{Received: true, Event: event, Note: "resource is not cached"})

		return
	}

	log.Info().
		Str("resource", event.Resource).
		Str("action", event.Action).
		Int("id", event.ID).
		Strs("invalidated", result.Invalidated).
		Msg("webhook delivery processed")

	writeJSON(w, http.StatusOK, webhookResponse{Received: true, Event: event, Invalidated: len(result.Invalidated)})
}

// ParseTopic splits "order.updated" into resource and action.
func ParseTopic(topic string) (Event, bool) {
	resource, action, ok := strings.Cut(strings.Trim(topic, "."), ".")
	if !ok || resource == "" || action == "" || strings.Contains(action, ".") {
		return Event{}, false
	}

	return Event{Resource: strings.ToLower(resource), Action: strings.ToLower(action)}, true
}
