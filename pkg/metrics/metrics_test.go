package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/architeacher/storetools/pkg/metrics"
	"github.com/architeacher/storetools/pkg/metrics/noop"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

func TestOTelClient_Inc(t *testing.T) {
	t.Parallel()

	client := metrics.NewOTelClient(metricnoop.NewMeterProvider().Meter("test"))

	require.NotPanics(t, func() {
		client.Inc(context.Background(), "tools.list_products.success", 1, attribute.String("tool", "list_products"))
		client.Inc(context.Background(), "tools.list_products.success", int64(2))
		client.Inc(context.Background(), "tools.list_products.duration", 0.25)
	})

	require.NoError(t, client.Shutdown(context.Background()))
}

func TestClients_Handler(t *testing.T) {
	t.Parallel()

	clients := []metrics.Client{
		noop.NewMetricsClient(),
		metrics.NewOTelClient(metricnoop.NewMeterProvider().Meter("test")),
	}

	for _, client := range clients {
		rec := httptest.NewRecorder()
		client.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
	}
}
