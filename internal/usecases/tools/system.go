package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"context"
	"encoding/json"
	"sort"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/pkg/validation"
)

type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

func (b builder) systemTools() []Tool {
	return []Tool{
		{
			Name:        "check_connection",
			Description: "Check that every configured API answers with the configured credentials.",
			Group:       GroupCommerce,
			Schema:      validation.Schema{},
			Handler: func(ctx context.Context, _ map[string]any) (json.RawMessage, error) {
				return json.Marshal(CheckConnections(ctx, b.app.Upstreams))
			},
		},
		{
			Name:        "get_system_status",
			Description: "Environment, database and plugin report of the store.",
			Group:       GroupCommerce,
			Schema:      validation.Schema{},
			Handler: func(ctx context.Context, _ map[string]any) (json.RawMessage, error) {
				return b.read(ctx, "get_system_status", ports.UpstreamCommerce, "system_status", nil, keyspaces.System.Item("status"), b.app.TTL.Default)
			},
		},
	}
}

// CheckConnections checks every upstream sequentially, in name order.
func CheckConnections(ctx context.Context, upstreams ports.Upstreams) map[string]ConnectionStatus {
	names := make([]string, 0, len(upstreams))
	for name := range upstreams {
		names = append(names, name)
	}

	sort.Strings(names)

	result := make(map[string]ConnectionStatus, len(names))

	for _, name := range names {
		if err := upstreams[name].CheckConnection(ctx); err != nil {
			result[name] = ConnectionStatus{Error: err.Error()}

			continue
		}

		result[name] = ConnectionStatus{Connected: true}
	}

	return result
}
