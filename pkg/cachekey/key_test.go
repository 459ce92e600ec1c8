package cachekey_test

import (
	"strings"
	"testing"

	"github.com/architeacher/storetools/pkg/cachekey"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		resource string
		wantErr  error
	}{
		{name: "plain resource", resource: "products"},
		{name: "nested resource", resource: "orders.notes"},
		{name: "empty", resource: "", wantErr: cachekey.ErrResourceEmpty},
		{name: "colon is reserved", resource: "orders:notes", wantErr: cachekey.ErrResourceInvalid},
		{name: "wildcard is reserved", resource: "orders*", wantErr: cachekey.ErrResourceInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ks, err := cachekey.New(tc.resource)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.resource, ks.Resource())
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { cachekey.MustNew("Bad Resource") })
}

func TestKeyspace_Keys(t *testing.T) {
	t.Parallel()

	products := cachekey.MustNew("products")

	require.Equal(t, "storetools:v1:products:item:42", products.Item(42))
	require.Equal(t, "storetools:v1:products:item:42:7", products.Item(42, 7))
	require.Equal(t, "storetools:v1:products:list:*", products.ListPattern())
	require.Equal(t, "storetools:v1:products:*", products.Pattern())

	list := products.List(map[string]any{"page": 1})
	require.True(t, strings.HasPrefix(list, cachekey.PatternPrefix(products.ListPattern())))
	require.Len(t, strings.TrimPrefix(list, "storetools:v1:products:list:"), 16)
}

func TestKeyspace_ListIsDeterministic(t *testing.T) {
	t.Parallel()

	orders := cachekey.MustNew("orders")

	first := orders.List(map[string]any{"status": "processing", "page": 2, "per_page": 10})
	second := orders.List(map[string]any{"per_page": 10, "page": 2, "status": "processing"})
	other := orders.List(map[string]any{"status": "completed", "page": 2, "per_page": 10})

	require.Equal(t, first, second)
	require.NotEqual(t, first, other)
}

func TestKeyspace_PatternsDoNotOverlap(t *testing.T) {
	t.Parallel()

	products := cachekey.MustNew("products")
	categories := cachekey.MustNew("products.categories")

	key := categories.List(nil)

	require.False(t, strings.HasPrefix(key, cachekey.PatternPrefix(products.ListPattern())))
	require.False(t, strings.HasPrefix(products.Item(1), cachekey.PatternPrefix(products.ListPattern())))
}

func TestIsPattern(t *testing.T) {
	t.Parallel()

	require.True(t, cachekey.IsPattern("storetools:v1:coupons:list:*"))
	require.False(t, cachekey.IsPattern("storetools:v1:coupons:item:1"))
	require.Equal(t, "coupons_", cachekey.PatternPrefix("coupons_*"))
}
