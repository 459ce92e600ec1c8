package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type (
	Client interface {
		Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue)
		Handler() http.Handler
		Shutdown(ctx context.Context) error
	}

	// Descriptor defines metadata used when registering OTEL instruments.
	Descriptor struct {
		Description string
		Unit        string
	}

	// OTelClient records every Inc call on a lazily registered Int64 counter.
	OTelClient struct {
		meter    metric.Meter
		mu       sync.Mutex
		counters map[string]metric.Int64Counter
	}
)

// RegisterInt64Counter creates an Int64 counter using the provided descriptor.
func RegisterInt64Counter(m metric.Meter, descriptor Descriptor, name string) (metric.Int64Counter, error) {
	counter, err := m.Int64Counter(
		name,
		metric.WithDescription(descriptor.Description),
		metric.WithUnit(descriptor.Unit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", name, err)
	}

	return counter, nil
}

func NewOTelClient(meter metric.Meter) *OTelClient {
	return &OTelClient{
		meter:    meter,
		counters: make(map[string]metric.Int64Counter),
	}
}

func (c *OTelClient) Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue) {
	counter, err := c.counter(key)
	if err != nil {
		return
	}

	counter.Add(ctx, toInt64(value), metric.WithAttributes(attributes...))
}

func (c *OTelClient) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (c *OTelClient) Shutdown(_ context.Context) error {
	return nil
}

func (c *OTelClient) counter(key string) (metric.Int64Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[key]; ok {
		return counter, nil
	}

	counter, err := RegisterInt64Counter(c.meter, Descriptor{Description: key, Unit: "1"}, key)
	if err != nil {
		return nil, err
	}

	c.counters[key] = counter

	return counter, nil
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 1
	}
}
