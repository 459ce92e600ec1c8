package services_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/architeacher/storetools/internal/adapters/services"
	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/mocks"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/stretchr/testify/require"
)

func upstreamResponse(data string) *model.UpstreamResponse {
	return &model.UpstreamResponse{Status: http.StatusOK, Data: json.RawMessage(data)}
}

func TestWebhookServiceSetup(t *testing.T) {
	t.Parallel()

	cfg := config.Webhook{
		BaseURL: "https://hooks.example.com/",
		Secret:  "s3cret",
		Topics:  []string{"order.created", "product.updated"},
	}

	commerce := &mocks.FakeRESTUpstream{}
	commerce.GetReturns(upstreamResponse(`[
		{"id":1,"topic":"order.created","delivery_url":"https://hooks.example.com/webhooks/order/created","status":"active"},
		{"id":2,"topic":"product.updated","delivery_url":"https://elsewhere.example.com/hook","status":"active"}
	]`), nil)
	commerce.BatchReturns(upstreamResponse(`{"create":[{"id":3,"topic":"product.updated","delivery_url":"https://hooks.example.com/webhooks/product/updated"}]}`), nil)

	svc := services.NewWebhookService(commerce, cfg, logger.NewTestLogger())

	setup, err := svc.Setup(t.Context())
	require.NoError(t, err)
	require.Len(t, setup.Existing, 1)
	require.Equal(t, 1, setup.Existing[0].ID)
	require.Len(t, setup.Created, 1)
	require.Equal(t, 3, setup.Created[0].ID)

	_, path, params := commerce.GetArgsForCall(0)
	require.Equal(t, "webhooks", path)
	require.Equal(t, 100, params["per_page"])

	require.Equal(t, 1, commerce.BatchCallCount())

	_, endpoint, payload := commerce.BatchArgsForCall(0)
	require.Equal(t, "webhooks", endpoint)

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	require.JSONEq(t, `{"create":[{
		"name":"storetools product.updated",
		"topic":"product.updated",
		"delivery_url":"https://hooks.example.com/webhooks/product/updated",
		"secret":"s3cret",
		"status":"active"
	}]}`, string(body))
}

func TestWebhookServiceSetupSkipsWhenRegistered(t *testing.T) {
	t.Parallel()

	commerce := &mocks.FakeRESTUpstream{}
	commerce.GetReturns(upstreamResponse(`[{"id":1,"topic":"coupon.created","delivery_url":"https://h.example.com/webhooks/coupon/created"}]`), nil)

	svc := services.NewWebhookService(commerce, config.Webhook{
		BaseURL: "https://h.example.com",
		Secret:  "x",
		Topics:  []string{"coupon.created"},
	}, logger.NewTestLogger())

	setup, err := svc.Setup(t.Context())
	require.NoError(t, err)
	require.Empty(t, setup.Created)
	require.Zero(t, commerce.BatchCallCount())
}

func TestWebhookServiceSetupNeedsConfiguration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  config.Webhook
	}{
		{name: "no base url", cfg: config.Webhook{Secret: "x", Topics: []string{"order.created"}}},
		{name: "no secret", cfg: config.Webhook{BaseURL: "https://h.example.com", Topics: []string{"order.created"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			commerce := &mocks.FakeRESTUpstream{}

			_, err := services.NewWebhookService(commerce, tc.cfg, logger.NewTestLogger()).Setup(t.Context())
			require.True(t, model.IsConfigError(err))
			require.Zero(t, commerce.GetCallCount())
			require.Zero(t, commerce.BatchCallCount())
		})
	}
}
