package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) AppendTracking(
	ctx context.Context,
	id kernel.UUID,
	expectedVersion int,
	event order.TrackingEvent,
) error {
	args := m.Called(ctx, id, expectedVersion, event)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, scope, key string) (kernel.UUID, bool, error) {
	args := m.Called(ctx, scope, key)
	return args.Get(0).(kernel.UUID), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, scope, key string, orderID kernel.UUID) error {
	args := m.Called(ctx, scope, key, orderID)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, scope, key string) error {
	args := m.Called(ctx, scope, key)
	return args.Error(0)
}

func principal(t *testing.T, subject string, role identity.Role) identity.Principal {
	t.Helper()
	p, err := identity.NewPrincipal(subject, role)
	require.NoError(t, err)
	return p
}

func address(t *testing.T) order.Address {
	t.Helper()
	addr, err := order.NewAddress("1 Main St", "", "Springfield", "", "62701", "US")
	require.NoError(t, err)
	return addr
}

// placedOrder returns a pending order of consumer C1 with vendor V1, optionally
// advanced through the given statuses.
func placedOrder(t *testing.T, statuses ...order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem("p1", 2, kernel.MustMoney("10.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "C1", "V1", "pay_1", order.PaymentSucceeded,
		[]order.Item{item}, address(t), time.Now().Add(-time.Hour))
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
