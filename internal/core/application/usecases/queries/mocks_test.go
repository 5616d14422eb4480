package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderReader) List(ctx context.Context, criteria ports.OrderCriteria) (ports.OrderPage, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(ports.OrderPage), args.Error(1)
}

func (m *MockOrderReader) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	args := m.Called(ctx)
	if counts := args.Get(0); counts != nil {
		return counts.(map[order.Status]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func principal(t *testing.T, subject string, role identity.Role) identity.Principal {
	t.Helper()
	p, err := identity.NewPrincipal(subject, role)
	require.NoError(t, err)
	return p
}

func placedOrder(t *testing.T, consumerID, vendorID string, statuses ...order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem("p1", 1, kernel.MustMoney("9.99"))
	require.NoError(t, err)
	addr, err := order.NewAddress("1 Main St", "", "Springfield", "", "62701", "US")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), consumerID, vendorID, "pay_1", order.PaymentSucceeded,
		[]order.Item{item}, addr, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	for _, s := range statuses {
		event, err := order.NewTrackingEvent(s, time.Now(), order.TrackingDetails{})
		require.NoError(t, err)
		require.NoError(t, o.AppendTracking(event))
	}
	return o
}

func intPtr(v int) *int {
	return &v
}
