package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	inboundhttp "github.com/architeacher/storetools/internal/adapters/inbound/http"
	"github.com/architeacher/storetools/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/storetools/internal/adapters/services"
	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/mocks"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/ports/portstest"
	"github.com/architeacher/storetools/internal/usecases"
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/metrics/noop"
	"github.com/stretchr/testify/require"
	"github.com/throttled/throttled/v2/store/memstore"
	otelNoop "go.opentelemetry.io/otel/trace/noop"
)

const secret = "whsec-test"

func newRouter(t *testing.T, rateLimit config.ThrottledRateLimiting) (http.Handler, *mocks.FakeResponseCache) {
	t.Helper()

	cfg := &config.ServiceConfig{
		WebhookServer:         config.WebhookServer{WriteTimeout: 5 * time.Second, MaxBodyBytes: 1 << 10},
		Webhook:               config.Webhook{Secret: secret},
		ThrottledRateLimiting: rateLimit,
	}

	cache := portstest.NewResponseCache()
	upstreams := ports.Upstreams{ports.UpstreamCommerce: portstest.NewUpstream(ports.UpstreamCommerce)}
	log := logger.NewTestLogger()

	app := usecases.NewApplication(
		cfg, upstreams, cache, nil,
		services.NewHealthService(cache, upstreams, []string{ports.UpstreamCommerce}, time.Second),
		log, noop.NewMetricsClient(), otelNoop.NewTracerProvider(),
	)

	store, err := memstore.NewCtx(100)
	require.NoError(t, err)

	router, err := inboundhttp.NewRouter(inboundhttp.RouterConfig{
		App:            app,
		RateLimitStore: store,
		TracerProvider: otelNoop.NewTracerProvider(),
		Logger:         log,
		Config:         cfg,
	})
	require.NoError(t, err)

	return router, cache
}

func delivery(path, body string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return req
}

func TestWebhookDeliveries(t *testing.T) {
	t.Parallel()

	body := `{"id":42,"status":"processing"}`
	valid := middleware.Sign(secret, []byte(body))

	cases := []struct {
		name            string
		req             *http.Request
		wantStatus      int
		wantCode        string
		wantInvalidated []string
	}{
		{
			name:       "signed product update",
			req:        delivery("/webhooks/product/updated", body, map[string]string{middleware.SignatureHeader: valid}),
			wantStatus: http.StatusOK,
			wantInvalidated: []string{keyspaces.Products.ListPattern(), keyspaces.Products.Item(42)},
		},
		{
			name:       "platform header and topic",
			req:        delivery("/webhooks/anything/here", body, map[string]string{middleware.PlatformSignatureHeader: valid, middleware.WebhookTopicHeader: "order.updated"}),
			wantStatus: http.StatusOK,
			wantInvalidated: []string{keyspaces.Orders.ListPattern(), keyspaces.Orders.Item(42), keyspaces.Reports.Pattern()},
		},
		{
			name:       "missing signature",
			req:        delivery("/webhooks/product/updated", body, nil),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_SIGNATURE",
		},
		{
			name:       "signature of another body",
			req:        delivery("/webhooks/product/updated", `{"id":43}`, map[string]string{middleware.SignatureHeader: valid}),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_SIGNATURE",
		},
		{
			name:       "topic without action",
			req:        delivery("/webhooks/product", body, map[string]string{middleware.SignatureHeader: valid}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_TOPIC",
		},
		{
			name:       "uncached resource",
			req:        delivery("/webhooks/subscription/renewed", body, map[string]string{middleware.SignatureHeader: valid}),
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, cache := newRouter(t, config.ThrottledRateLimiting{})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tc.req)

			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			require.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
			require.Equal(t, tc.wantInvalidated, portstest.Invalidated(cache))

			if tc.wantCode != "" {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.Equal(t, tc.wantCode, resp["code"])
			}
		})
	}
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	body := []byte(`{"id":1}`)

	require.NoError(t, middleware.VerifySignature(secret, body, middleware.Sign(secret, body)))
	require.ErrorIs(t, middleware.VerifySignature(secret, body, ""), middleware.ErrSignatureMissing)
	require.ErrorIs(t, middleware.VerifySignature("", body, middleware.Sign("", body)), middleware.ErrSignatureMissing)
	require.ErrorIs(t, middleware.VerifySignature(secret, body, middleware.Sign("other", body)), middleware.ErrSignatureMismatch)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newRouter(t, config.ThrottledRateLimiting{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Equal(t, "default-src 'none'; frame-ancestors 'none'", rec.Header().Get("Content-Security-Policy"))
	require.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	var report struct {
		Status string                    `json:"status"`
		Checks map[string]map[string]any `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, "ok", report.Status)
	require.Equal(t, "up", report.Checks[ports.UpstreamCommerce]["status"])
	require.Equal(t, "up", report.Checks["cache"]["status"])
}

func TestWebhookRateLimiting(t *testing.T) {
	t.Parallel()

	router, _ := newRouter(t, config.ThrottledRateLimiting{
		Enabled:           true,
		RequestsPerSecond: 1,
		BurstSize:         1,
		SkipPaths:         []string{"/health"},
	})

	body := `{"id":1}`
	headers := map[string]string{middleware.SignatureHeader: middleware.Sign(secret, []byte(body))}

	statuses := make([]int, 0, 4)
	for range 4 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, delivery("/webhooks/coupon/created", body, headers))
		statuses = append(statuses, rec.Code)
	}

	require.Contains(t, statuses, http.StatusTooManyRequests)
	require.Equal(t, http.StatusOK, statuses[0])

	for range 3 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
