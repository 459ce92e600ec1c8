package middleware

import (
	"net/http"

	"github.com/architeacher/storetools/pkg/logger"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-Id"

	// Headers the platform sets on every webhook delivery.
	WebhookTopicHeader      = "X-WC-Webhook-Topic"
	WebhookDeliveryIDHeader = "X-WC-Webhook-Delivery-ID"
	WebhookSourceHeader     = "X-WC-Webhook-Source"

	maxRequestIDLength = 128
)

// RequestContext tags the request context with a request id and, for webhook
// deliveries, the topic and delivery id, so every log line of the request
// carries them. A missing or malformed X-Request-Id is replaced.
func RequestContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if !validRequestID(requestID) {
				requestID = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, requestID)

			ctx := logger.WithRequestID(r.Context(), requestID)

			if topic := r.Header.Get(WebhookTopicHeader); topic != "" {
				ctx = logger.WithWebhookDelivery(ctx, topic, r.Header.Get(WebhookDeliveryIDHeader))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validRequestID accepts printable ASCII without spaces, so ids are safe to
// echo back and to log.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}

	return true
}
