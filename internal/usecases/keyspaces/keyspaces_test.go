package keyspaces_test

import (
	"testing"

	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"github.com/stretchr/testify/require"
)

func TestInvalidationForEvent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		resource string
		id       int
		want     []string
		known    bool
	}{
		{
			name:     "product with id",
			resource: "product",
			id:       4,
			want:     []string{keyspaces.Products.ListPattern(), keyspaces.Products.Item(4)},
			known:    true,
		},
		{
			name:     "customer without id",
			resource: "customer",
			want:     []string{keyspaces.Customers.ListPattern()},
			known:    true,
		},
		{
			name:     "order drops reports",
			resource: "order",
			id:       9,
			want:     []string{keyspaces.Orders.ListPattern(), keyspaces.Orders.Item(9), keyspaces.Reports.Pattern()},
			known:    true,
		},
		{name: "unknown resource", resource: "shipment", id: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			targets, ok := keyspaces.InvalidationForEvent(tc.resource, tc.id)
			require.Equal(t, tc.known, ok)
			require.Equal(t, tc.want, targets)
		})
	}
}
