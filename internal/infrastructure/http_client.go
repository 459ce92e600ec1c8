package infrastructure

import (
	"net/http"

	"github.com/architeacher/storetools/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// NewHTTPClient returns the client shared by the upstream REST adapters. Each request
// gets a client span named after its method.
func NewHTTPClient(cfg config.HTTPClient, tracerProvider trace.TracerProvider) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: otelhttp.NewTransport(transport,
			otelhttp.WithTracerProvider(tracerProvider),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "upstream " + r.Method
			}),
		),
	}
}
