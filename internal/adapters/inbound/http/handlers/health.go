package handlers

import (
	"net/http"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/usecases/queries"
)

type HealthHandler struct {
	query queries.FetchHealthReportQueryHandler
}

func NewHealthHandler(query queries.FetchHealthReportQueryHandler) *HealthHandler {
	return &HealthHandler{query: query}
}

// Health answers 503 only when every dependency is down.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	report, err := h.query.Execute(r.Context(), queries.FetchHealthReportQuery{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "HEALTH_CHECK_FAILED", err.Error())

		return
	}

	status := http.StatusOK
	if report.Status == model.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, report)
}
