package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// CommittedEvent is a tracking event that is durably part of an order's ledger.
type CommittedEvent struct {
	OrderID  kernel.UUID
	VendorID string
	Event    order.TrackingEvent
}

// TrackingEventPublisher receives tracking events after the transaction that appended
// them has committed. Implementations must not block for long and must not fail the
// caller; delivery problems are theirs to log.
type TrackingEventPublisher interface {
	Publish(ctx context.Context, events []CommittedEvent)
}
