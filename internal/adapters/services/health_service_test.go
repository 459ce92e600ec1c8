package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/architeacher/storetools/internal/adapters/services"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/mocks"
	"github.com/architeacher/storetools/internal/ports"
	"github.com/stretchr/testify/require"
)

func TestHealthService(t *testing.T) {
	t.Parallel()

	expected := []string{ports.UpstreamCommerce, ports.UpstreamContent}

	cases := []struct {
		name       string
		cache      func() ports.ResponseCache
		upstreams  func() ports.Upstreams
		wantStatus model.HealthStatus
		wantChecks map[string]model.DependencyStatus
	}{
		{
			name:  "everything reachable",
			cache: func() ports.ResponseCache { return &mocks.FakeResponseCache{} },
			upstreams: func() ports.Upstreams {
				return ports.Upstreams{
					ports.UpstreamCommerce: &mocks.FakeRESTUpstream{},
					ports.UpstreamContent:  &mocks.FakeRESTUpstream{},
				}
			},
			wantStatus: model.HealthStatusOK,
			wantChecks: map[string]model.DependencyStatus{
				"cache":                model.DependencyStatusUp,
				ports.UpstreamCommerce: model.DependencyStatusUp,
				ports.UpstreamContent:  model.DependencyStatusUp,
			},
		},
		{
			name:  "content not configured and cache disabled",
			cache: func() ports.ResponseCache { return nil },
			upstreams: func() ports.Upstreams {
				return ports.Upstreams{ports.UpstreamCommerce: &mocks.FakeRESTUpstream{}}
			},
			wantStatus: model.HealthStatusOK,
			wantChecks: map[string]model.DependencyStatus{
				"cache":                model.DependencyStatusDisabled,
				ports.UpstreamCommerce: model.DependencyStatusUp,
				ports.UpstreamContent:  model.DependencyStatusDisabled,
			},
		},
		{
			name: "cache store unreachable",
			cache: func() ports.ResponseCache {
				cache := &mocks.FakeResponseCache{}
				cache.PingReturns(errors.New("dial tcp: connection refused"))

				return cache
			},
			upstreams: func() ports.Upstreams {
				return ports.Upstreams{ports.UpstreamCommerce: &mocks.FakeRESTUpstream{}}
			},
			wantStatus: model.HealthStatusDegraded,
			wantChecks: map[string]model.DependencyStatus{
				"cache":                model.DependencyStatusDown,
				ports.UpstreamCommerce: model.DependencyStatusUp,
				ports.UpstreamContent:  model.DependencyStatusDisabled,
			},
		},
		{
			name:  "every dependency down",
			cache: func() ports.ResponseCache { return nil },
			upstreams: func() ports.Upstreams {
				commerce := &mocks.FakeRESTUpstream{}
				commerce.CheckConnectionReturns(&model.NetworkError{Err: errors.New("no route to host")})

				return ports.Upstreams{ports.UpstreamCommerce: commerce}
			},
			wantStatus: model.HealthStatusDown,
			wantChecks: map[string]model.DependencyStatus{
				"cache":                model.DependencyStatusDisabled,
				ports.UpstreamCommerce: model.DependencyStatusDown,
				ports.UpstreamContent:  model.DependencyStatusDisabled,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := services.NewHealthService(tc.cache(), tc.upstreams(), expected, time.Second)

			report, err := svc.Health(t.Context())
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, report.Status)
			require.Len(t, report.Checks, len(tc.wantChecks))

			for name, status := range tc.wantChecks {
				require.Equal(t, status, report.Checks[name].Status, name)
			}
		})
	}
}
