package ports

import (
	"context"

	"github.com/architeacher/storetools/internal/domain/model"
)

// HealthChecker reports on the cache and every configured upstream. It backs
// both the check CLI command and GET /health.
type HealthChecker interface {
	Health(ctx context.Context) (*model.HealthReport, error)
}

// CachePinger is the part of the response cache a health check needs. A nil
// error means the backing store answered.
type CachePinger interface {
	Ping(ctx context.Context) error
}
