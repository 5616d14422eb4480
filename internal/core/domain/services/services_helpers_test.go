package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, consumerID, vendorID string) *order.Order {
	t.Helper()
	item, err := order.NewItem("p1", 2, kernel.MustMoney("10.00"))
	require.NoError(t, err)
	addr, err := order.NewAddress("1 Main St", "", "Springfield", "", "62701", "US")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), consumerID, vendorID, "pay_1", order.PaymentSucceeded,
		[]order.Item{item}, addr, t0)
	require.NoError(t, err)
	return o
}

func principal(t *testing.T, subject string, role identity.Role) identity.Principal {
	t.Helper()
	p, err := identity.NewPrincipal(subject, role)
	require.NoError(t, err)
	return p
}
