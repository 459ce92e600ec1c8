package rest

import (
	"net/http"
	"strings"

	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/circuitbreaker"
	"github.com/architeacher/storetools/pkg/logger"
)

const (
	UpstreamCommerce = ports.UpstreamCommerce
	UpstreamContent  = ports.UpstreamContent
	UpstreamYoast    = ports.UpstreamYoast
	UpstreamRankMath = ports.UpstreamRankMath

	yoastAPIPath    = "wp-json/yoast/v1"
	rankMathAPIPath = "wp-json/rankmath/v1"
)

// NewCommerceClient builds the WooCommerce client with the configured signing strategy.
func NewCommerceClient(cfg *config.ServiceConfig, httpClient *http.Client, log logger.Logger) (*Client, error) {
	auth, err := NewCommerceAuthenticator(cfg.Commerce, log)
	if err != nil {
		return nil, err
	}

	return NewClient(
		UpstreamCommerce,
		joinURL(cfg.Commerce.URL, cfg.Commerce.APIPath),
		auth,
		clientOptions(UpstreamCommerce, cfg, httpClient, log)...,
	)
}

// NewContentClient builds the WordPress wp/v2 client. It fails with a ConfigError
// when content credentials are missing.
func NewContentClient(cfg *config.ServiceConfig, httpClient *http.Client, log logger.Logger) (*Client, error) {
	return newContentNamespaceClient(UpstreamContent, cfg.Content.APIPath, cfg, httpClient, log)
}

// NewYoastClient builds the client for the Yoast SEO namespace.
func NewYoastClient(cfg *config.ServiceConfig, httpClient *http.Client, log logger.Logger) (*Client, error) {
	return newContentNamespaceClient(UpstreamYoast, yoastAPIPath, cfg, httpClient, log)
}

// NewRankMathClient builds the client for the Rank Math namespace.
func NewRankMathClient(cfg *config.ServiceConfig, httpClient *http.Client, log logger.Logger) (*Client, error) {
	return newContentNamespaceClient(UpstreamRankMath, rankMathAPIPath, cfg, httpClient, log)
}

func newContentNamespaceClient(name, apiPath string, cfg *config.ServiceConfig, httpClient *http.Client, log logger.Logger) (*Client, error) {
	auth, err := NewContentAuthenticator(cfg.Content)
	if err != nil {
		return nil, err
	}

	return NewClient(
		name,
		joinURL(cfg.Content.BaseURL(cfg.Commerce), apiPath),
		auth,
		clientOptions(name, cfg, httpClient, log)...,
	)
}

func clientOptions(name string, cfg *config.ServiceConfig, httpClient *http.Client, log logger.Logger) []Option {
	log = log.Component("upstream." + name)

	breaker := circuitbreaker.New[*model.UpstreamResponse](circuitbreaker.Config{
		Name:             name,
		Enabled:          cfg.CircuitBreaker.Enabled,
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		Interval:         cfg.CircuitBreaker.Interval,
		Timeout:          cfg.CircuitBreaker.Timeout,
		FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
		IsFailure:        model.IsTransient,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	opts := []Option{
		WithLogger(log),
		WithUserAgent(cfg.HTTPClient.UserAgent),
		WithCircuitBreaker(breaker),
	}

	if httpClient != nil {
		opts = append(opts, WithHTTPClient(httpClient))
	}

	return opts
}

func joinURL(base, apiPath string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Trim(apiPath, "/") + "/"
}
