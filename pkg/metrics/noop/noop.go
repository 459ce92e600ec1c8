// Package noop provides the metrics client used when telemetry is disabled.
package noop

import (
	"context"
	"net/http"

	"github.com/architeacher/storetools/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

type MetricsClient struct{}

var _ metrics.Client = MetricsClient{}

func NewMetricsClient() MetricsClient {
	return MetricsClient{}
}

func (MetricsClient) Inc(context.Context, string, any, ...attribute.KeyValue) {}

func (MetricsClient) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (MetricsClient) Shutdown(context.Context) error {
	return nil
}
