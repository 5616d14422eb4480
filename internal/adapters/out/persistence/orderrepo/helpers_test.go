package orderrepo_test

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// MockEventTracker is a mock implementation of the eventTracker interface.
type MockEventTracker struct {
	mock.Mock
}

func (m *MockEventTracker) TrackEvent(event ports.CommittedEvent) {
	m.Called(event)
}

func newTestOrder(consumerID, vendorID string, createdAt time.Time) (*order.Order, error) {
	first, err := order.NewItem("p1", 2, kernel.MustMoney("10.00"))
	if err != nil {
		return nil, err
	}
	second, err := order.NewItem("p2", 1, kernel.MustMoney("5.00"))
	if err != nil {
		return nil, err
	}
	addr, err := order.NewAddress("1 Main St", "Apt 4", "Springfield", "IL", "62701", "us")
	if err != nil {
		return nil, err
	}
	return order.NewOrder(kernel.NewUUID(), consumerID, vendorID, "pay_123", order.PaymentSucceeded,
		[]order.Item{first, second}, addr, createdAt)
}

func committedWithStatus(id kernel.UUID, status order.Status) any {
	return mock.MatchedBy(func(e ports.CommittedEvent) bool {
		return e.OrderID.IsEqual(id) && e.Event.Status() == status
	})
}
