package model

import "time"

type (
	HealthStatus string

	DependencyStatus string

	DependencyCheck struct {
		Status      DependencyStatus `json:"status"`
		LatencyMs   uint64           `json:"latency_ms"`
		Message     string           `json:"message,omitempty"`
		LastChecked time.Time        `json:"last_checked"`
		Error       string           `json:"error,omitempty"`
	}

	HealthReport struct {
		Status    HealthStatus               `json:"status"`
		Timestamp time.Time                  `json:"timestamp"`
		Version   string                     `json:"version"`
		Checks    map[string]DependencyCheck `json:"checks"`
	}
)

const (
	HealthStatusOK       HealthStatus = "ok"
	HealthStatusDegraded HealthStatus = "degraded"
	HealthStatusDown     HealthStatus = "down"

	DependencyStatusUp       DependencyStatus = "up"
	DependencyStatusDown     DependencyStatus = "down"
	DependencyStatusDisabled DependencyStatus = "disabled"
)

// Aggregate derives the overall status: down when every check failed, degraded when some did.
func (r *HealthReport) Aggregate() HealthStatus {
	var up, down int

	for _, check := range r.Checks {
		switch check.Status {
		case DependencyStatusUp:
			up++
		case DependencyStatusDown:
			down++
		}
	}

	switch {
	case down == 0:
		r.Status = HealthStatusOK
	case up == 0:
		r.Status = HealthStatusDown
	default:
		r.Status = HealthStatusDegraded
	}

	return r.Status
}
