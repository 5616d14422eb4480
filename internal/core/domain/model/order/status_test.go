package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should round trip every status", func(t *testing.T) {
		for _, status := range order.Statuses() {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		for _, s := range []string{"", "Pending", "returned", "unknown"} {
			_, err := order.ParseStatus(s)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})
}

func TestStatus_Predicates(t *testing.T) {
	tests := []struct {
		status      order.Status
		cancellable bool
		terminal    bool
	}{
		{order.Pending, true, false},
		{order.Processing, true, false},
		{order.Shipped, false, false},
		{order.OutForDelivery, false, false},
		{order.Delivered, false, true},
		{order.Cancelled, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.cancellable, tt.status.IsCancellable())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			require.NoError(t, tt.status.Validate())
		})
	}

	require.Error(t, order.Unknown.Validate())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestParsePaymentStatus(t *testing.T) {
	for _, s := range []string{"pending", "succeeded", "failed"} {
		status, err := order.ParsePaymentStatus(s)

		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	_, err := order.ParsePaymentStatus("refunded")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
