package infrastructure_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/infrastructure"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewTracerProvider_StdoutExporter(t *testing.T) {
	t.Parallel()

	tp, shutdown, err := infrastructure.NewTracerProvider(
		config.App{ServiceName: "storetools"},
		config.Telemetry{ExporterType: "stdout", Traces: config.Traces{SamplerRatio: 1}},
	)
	require.NoError(t, err)
	require.NotNil(t, tp)
	require.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProvider_UnknownExporter(t *testing.T) {
	t.Parallel()

	_, _, err := infrastructure.NewTracerProvider(config.App{}, config.Telemetry{ExporterType: "zipkin"})
	require.ErrorContains(t, err, `unsupported exporter type "zipkin"`)
}

func TestNewHTTPClient_TracesUpstreamCalls(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	client := infrastructure.NewHTTPClient(config.HTTPClient{Timeout: 5 * time.Second}, provider)
	require.Equal(t, 5*time.Second, client.Timeout)

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "upstream GET", spans[0].Name())
}
