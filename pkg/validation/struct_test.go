package validation_test

import (
	"errors"
	"testing"

	"github.com/architeacher/storetools/pkg/validation"
	"github.com/stretchr/testify/require"
)

type updateOrderRequest struct {
	ID      int            `mapstructure:"id" validate:"required,gt=0"`
	Status  string         `mapstructure:"status" validate:"omitempty,oneof=pending processing completed"`
	Note    string         `mapstructure:"note" validate:"omitempty,max=5"`
	Payload map[string]any `mapstructure:",remain"`
}

func TestStruct(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		req        updateOrderRequest
		wantFields []string
	}{
		{name: "valid", req: updateOrderRequest{ID: 1, Status: "completed"}},
		{name: "missing id", req: updateOrderRequest{}, wantFields: []string{"id"}},
		{name: "negative id", req: updateOrderRequest{ID: -4}, wantFields: []string{"id"}},
		{name: "bad status and note", req: updateOrderRequest{ID: 1, Status: "lost", Note: "too long"}, wantFields: []string{"note", "status"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := validation.Struct(tc.req)
			if len(tc.wantFields) == 0 {
				require.NoError(t, err)

				return
			}

			var verr *validation.Error
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, len(tc.wantFields))

			for _, field := range tc.wantFields {
				require.True(t, verr.Has(field), verr.Details)
			}
		})
	}
}

func TestStruct_Messages(t *testing.T) {
	t.Parallel()

	err := validation.Struct(updateOrderRequest{Status: "lost"})

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "id: is required, status: must be one of [pending processing completed]", verr.Details)
}

func TestBind(t *testing.T) {
	t.Parallel()

	req, err := validation.Bind[updateOrderRequest](map[string]any{
		"id":            float64(12),
		"status":        "processing",
		"set_paid":      true,
		"customer_note": "leave at door",
	})

	require.NoError(t, err)
	require.Equal(t, 12, req.ID)
	require.Equal(t, "processing", req.Status)
	require.Equal(t, map[string]any{"set_paid": true, "customer_note": "leave at door"}, req.Payload)

	_, err = validation.Bind[updateOrderRequest](map[string]any{"status": "processing"})
	require.True(t, validation.IsValidationError(err))

	_, err = validation.Bind[updateOrderRequest](map[string]any{"id": []any{"x"}})
	require.True(t, validation.IsValidationError(err))
}
