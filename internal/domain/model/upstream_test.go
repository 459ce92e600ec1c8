package model_test

import (
	"net/http"
	"testing"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestUpstreamResponse_Pagination(t *testing.T) {
	t.Parallel()

	header := http.Header{}
	header.Set(model.HeaderTotal, "42")
	header.Set(model.HeaderTotalPages, "5")

	resp := &model.UpstreamResponse{Status: http.StatusOK, Header: header}
	require.Equal(t, 42, resp.Total())
	require.Equal(t, 5, resp.TotalPages())

	empty := &model.UpstreamResponse{Status: http.StatusOK}
	require.Equal(t, -1, empty.Total())
	require.Equal(t, -1, empty.TotalPages())
}

func TestHealthReport_Aggregate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		checks map[string]model.DependencyStatus
		want   model.HealthStatus
	}{
		{name: "all up", checks: map[string]model.DependencyStatus{"cache": model.DependencyStatusUp, "commerce": model.DependencyStatusUp}, want: model.HealthStatusOK},
		{name: "disabled ignored", checks: map[string]model.DependencyStatus{"cache": model.DependencyStatusUp, "content": model.DependencyStatusDisabled}, want: model.HealthStatusOK},
		{name: "one down", checks: map[string]model.DependencyStatus{"cache": model.DependencyStatusUp, "commerce": model.DependencyStatusDown}, want: model.HealthStatusDegraded},
		{name: "all down", checks: map[string]model.DependencyStatus{"commerce": model.DependencyStatusDown}, want: model.HealthStatusDown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report := &model.HealthReport{Checks: map[string]model.DependencyCheck{}}
			for name, status := range tc.checks {
				report.Checks[name] = model.DependencyCheck{Status: status}
			}

			require.Equal(t, tc.want, report.Aggregate())
			require.Equal(t, tc.want, report.Status)
		})
	}
}
