package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/ports"
)

const cacheCheckName = "cache"

// HealthService checks the cache store and every configured upstream concurrently.
type HealthService struct {
	cache     ports.CachePinger
	upstreams ports.Upstreams
	expected  []string
	timeout   time.Duration
	now       func() time.Time
}

var _ ports.HealthChecker = (*HealthService)(nil)

// NewHealthService reports every name in expected; names missing from upstreams
// are reported as disabled.
func NewHealthService(cache ports.CachePinger, upstreams ports.Upstreams, expected []string, timeout time.Duration) *HealthService {
	return &HealthService{
		cache:     cache,
		upstreams: upstreams,
		expected:  expected,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (s *HealthService) Health(ctx context.Context) (*model.HealthReport, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)

		defer cancel()
	}

	report := &model.HealthReport{
		Timestamp: s.now().UTC(),
		Version:   config.ServiceVersion,
		Checks:    make(map[string]model.DependencyCheck, len(s.expected)+1),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	record := func(name string, check model.DependencyCheck) {
		mu.Lock()
		defer mu.Unlock()

		report.Checks[name] = check
	}

	if s.cache == nil {
		record(cacheCheckName, model.DependencyCheck{Status: model.DependencyStatusDisabled, LastChecked: report.Timestamp})
	} else {
		wg.Add(1)

		go func() {
			defer wg.Done()

			record(cacheCheckName, s.measure(func() error { return s.cache.Ping(ctx) }))
		}()
	}

	names := append([]string(nil), s.expected...)
	sort.Strings(names)

	for _, name := range names {
		upstream, ok := s.upstreams[name]
		if !ok || upstream == nil {
			record(name, model.DependencyCheck{
				Status:      model.DependencyStatusDisabled,
				Message:     "not configured",
				LastChecked: report.Timestamp,
			})

			continue
		}

		wg.Add(1)

		go func() {
			defer wg.Done()

			record(name, s.measure(func() error { return upstream.CheckConnection(ctx) }))
		}()
	}

	wg.Wait()

	report.Aggregate()

	return report, nil
}

func (s *HealthService) measure(check func() error) model.DependencyCheck {
	start := s.now()
	err := check()

	result := model.DependencyCheck{
		Status:      model.DependencyStatusUp,
		Message:     "ok",
		LatencyMs:   uint64(s.now().Sub(start).Milliseconds()),
		LastChecked: start.UTC(),
	}

	if err != nil {
		result.Status = model.DependencyStatusDown
		result.Message = ""
		result.Error = err.Error()
	}

	return result
}
