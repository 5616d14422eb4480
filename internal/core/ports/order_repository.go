package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the write-side persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order together with its items and initial tracking event.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its full ledger.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AppendTracking atomically appends event to the ledger of order id and moves the
	// stored status and version along with it, provided the stored version still equals
	// expectedVersion. A stale version fails with errs.ConcurrencyConflictError and
	// leaves the ledger untouched.
	AppendTracking(ctx context.Context, id kernel.UUID, expectedVersion int, event order.TrackingEvent) error
}

// OrderCriteria filters an order listing. Nil and empty fields do not filter.
type OrderCriteria struct {
	Status        *order.Status
	ConsumerID    string
	VendorID      string
	CreatedFrom   *time.Time // inclusive
	CreatedBefore *time.Time // exclusive
	Offset        int
	Limit         int
}

// OrderPage is one page of a listing; Total counts every match before pagination.
type OrderPage struct {
	Orders []*order.Order
	Total  int64
}

// OrderReader is the read-side contract used by queries.
type OrderReader interface {
	// Get behaves like OrderRepository.Get outside of any transaction.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns matching orders newest first.
	List(ctx context.Context, criteria OrderCriteria) (OrderPage, error)

	// CountByStatus returns the number of orders currently in each status.
	CountByStatus(ctx context.Context) (map[order.Status]int64, error)
}
