package rest

import (
	"net/http"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/pkg/circuitbreaker"
	"github.com/architeacher/storetools/pkg/logger"
)

// Option configures the REST Client.
type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithCircuitBreaker injects a prebuilt breaker, for example one shared between
// clients of the same site.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker[*model.UpstreamResponse]) Option {
	return func(c *Client) {
		c.cb = cb
	}
}
