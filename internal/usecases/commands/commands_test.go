package commands_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/ports/portstest"
	"github.com/architeacher/storetools/internal/usecases/commands"
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/metrics/noop"
	"github.com/architeacher/storetools/pkg/retry"
	"github.com/stretchr/testify/require"
	otelNoop "go.opentelemetry.io/otel/trace/noop"
)

func TestWriteUpstreamCommandHandler(t *testing.T) {
	t.Parallel()

	log := logger.NewTestLogger()
	mc := noop.NewMetricsClient()
	tp := otelNoop.NewTracerProvider()

	retryOpts := []retry.Option{retry.Policy(retry.Options{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		ShouldRetry:  retry.AnyOf(model.IsNetworkError, model.IsServerError, model.IsRateLimited),
	})}

	invalidate := []string{"storetools:v1:products:item:3", "storetools:v1:products:list:*"}

	cases := []struct {
		name            string
		cmd             commands.WriteUpstreamCommand
		replies         []portstest.Reply
		wantRoute       [2]string
		wantCalls       int
		wantInvalidated []string
		wantErr         func(error) bool
	}{
		{
			name:            "put invalidates after success",
			cmd:             commands.WriteUpstreamCommand{Tool: "update_product", Upstream: ports.UpstreamCommerce, Method: http.MethodPut, Path: "products/3", Body: map[string]any{"name": "Hat"}, Invalidate: invalidate},
			wantRoute:       [2]string{http.MethodPut, "products/3"},
			wantCalls:       1,
			wantInvalidated: invalidate,
		},
		{
			name:            "delete sends params",
			cmd:             commands.WriteUpstreamCommand{Tool: "delete_product", Upstream: ports.UpstreamCommerce, Method: http.MethodDelete, Path: "products/3", Params: map[string]any{"force": true}, Invalidate: invalidate},
			wantRoute:       [2]string{http.MethodDelete, "products/3"},
			wantCalls:       1,
			wantInvalidated: invalidate,
		},
		{
			name:            "rate limited post is retried",
			cmd:             commands.WriteUpstreamCommand{Tool: "create_product", Upstream: ports.UpstreamCommerce, Method: http.MethodPost, Path: "products", Invalidate: invalidate[1:]},
			replies:         []portstest.Reply{{Err: &model.HTTPError{Status: http.StatusTooManyRequests}}, {Data: `{"id":3}`}},
			wantRoute:       [2]string{http.MethodPost, "products"},
			wantCalls:       2,
			wantInvalidated: invalidate[1:],
		},
		{
			name:      "rejected write keeps the cache",
			cmd:       commands.WriteUpstreamCommand{Tool: "update_product", Upstream: ports.UpstreamCommerce, Method: http.MethodPut, Path: "products/3", Invalidate: invalidate},
			replies:   []portstest.Reply{{Err: &model.HTTPError{Status: http.StatusBadRequest}}},
			wantRoute: [2]string{http.MethodPut, "products/3"},
			wantCalls: 1,
			wantErr:   func(err error) bool { return model.StatusOf(err) == http.StatusBadRequest },
		},
		{
			name:      "unsupported method",
			cmd:       commands.WriteUpstreamCommand{Tool: "patch_product", Upstream: ports.UpstreamCommerce, Method: http.MethodPatch, Path: "products/3"},
			wantRoute: [2]string{http.MethodPatch, "products/3"},
			wantErr:   model.IsConfigError,
		},
		{
			name:      "upload goes through the media uploader",
			cmd:       commands.WriteUpstreamCommand{Tool: "upload_media", Upstream: ports.UpstreamCommerce, Upload: &commands.MediaFile{Filename: "a.png", ContentType: "image/png", Data: []byte{1}}},
			wantRoute: [2]string{portstest.MethodUpload, "media"},
			wantCalls: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			upstream := portstest.NewUpstream(ports.UpstreamCommerce).On(tc.wantRoute[0], tc.wantRoute[1], tc.replies...)
			cache := portstest.NewResponseCache()

			handler := commands.NewWriteUpstreamCommandHandler(
				ports.Upstreams{ports.UpstreamCommerce: upstream}, cache, retryOpts, log, mc, tp,
			)

			_, err := handler.Handle(t.Context(), tc.cmd)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr(err), "unexpected error %v", err)
			} else {
				require.NoError(t, err)
			}

			require.Equal(t, tc.wantCalls, upstream.Calls(tc.wantRoute[0], tc.wantRoute[1]))
			require.Equal(t, tc.wantInvalidated, portstest.Invalidated(cache))
		})
	}
}

func TestHandleWebhookEventCommandHandler(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name            string
		cmd             commands.WebhookEventCommand
		wantCached      bool
		wantInvalidated []string
	}{
		{
			name:            "updated product drops its item and lists",
			cmd:             commands.WebhookEventCommand{Resource: "product", Action: "updated", ID: 42},
			wantCached:      true,
			wantInvalidated: []string{keyspaces.Products.ListPattern(), keyspaces.Products.Item(42)},
		},
		{
			name:            "created order drops reports",
			cmd:             commands.WebhookEventCommand{Resource: "order", Action: "created", ID: 7},
			wantCached:      true,
			wantInvalidated: []string{keyspaces.Orders.ListPattern(), keyspaces.Orders.Item(7), keyspaces.Reports.Pattern()},
		},
		{
			name: "uncached resource is acknowledged",
			cmd:  commands.WebhookEventCommand{Resource: "subscription", Action: "updated", ID: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cache := portstest.NewResponseCache()
			handler := commands.NewHandleWebhookEventCommandHandler(
				cache, logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider(),
			)

			result, err := handler.Handle(t.Context(), tc.cmd)
			require.NoError(t, err)
			require.Equal(t, tc.wantCached, result.Cached)
			require.Equal(t, tc.wantInvalidated, result.Invalidated)
			require.Equal(t, tc.wantInvalidated, portstest.Invalidated(cache))
		})
	}
}

func TestWebhookEventCommandActionName(t *testing.T) {
	t.Parallel()

	cmd := commands.WebhookEventCommand{Resource: "coupon", Action: "deleted"}
	require.Equal(t, "webhook_coupon_deleted", cmd.ActionName())
}
