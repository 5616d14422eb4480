package commands_test

import (
	"strings"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(productID, vendorID string, quantity int, price string) commands.OrderLine {
	return commands.OrderLine{
		ProductID: productID,
		VendorID:  vendorID,
		Quantity:  quantity,
		Price:     decimal.RequireFromString(price),
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	consumer := principal(t, "C1", identity.Consumer)

	t.Run("should take the vendor from the first line when not explicit", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(consumer, "", "", "pay_1", order.PaymentSucceeded,
			[]commands.OrderLine{line("p1", "V1", 2, "10.00"), line("p2", "", 1, "5.00")}, address(t), " key-1 ")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "V1", cmd.VendorID())
		assert.Len(t, cmd.Items(), 2)
		assert.Equal(t, "key-1", cmd.IdempotencyKey())
	})

	t.Run("should reject lines from another vendor", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(consumer, "", "V1", "pay_1", order.PaymentSucceeded,
			[]commands.OrderLine{line("p1", "V1", 1, "1.00"), line("p2", "V2", 1, "1.00")}, address(t), "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "orderItems[1].vendorId")
	})

	t.Run("should reject empty items, missing vendor and payment", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(consumer, "", "", " ", order.PaymentSucceeded, nil, address(t), "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "orderItems")
		assert.Contains(t, err.Error(), "paymentId")

		_, err = commands.NewCreateOrderCommand(consumer, "", "", "pay_1", order.PaymentSucceeded,
			[]commands.OrderLine{line("p1", "", 1, "1.00")}, address(t), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "vendorId")
	})

	t.Run("should reject bad quantities and prices", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(consumer, "", "V1", "pay_1", order.PaymentSucceeded,
			[]commands.OrderLine{line("p1", "", 0, "1.00"), line("p2", "", 1, "-1.00")}, address(t), "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "orderItems[0]")
		assert.Contains(t, err.Error(), "orderItems[1].price")
	})

	t.Run("should reject missing address and oversized idempotency key", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(consumer, "", "V1", "pay_1", order.PaymentSucceeded,
			[]commands.OrderLine{line("p1", "", 1, "1.00")}, order.Address{}, strings.Repeat("k", 256))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should require an authenticated principal", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(identity.Principal{}, "", "V1", "pay_1", order.PaymentSucceeded,
			[]commands.OrderLine{line("p1", "", 1, "1.00")}, address(t), "")

		require.ErrorIs(t, err, errs.ErrNotAuthenticated)
	})
}
