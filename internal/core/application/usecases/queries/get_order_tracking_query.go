package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery retrieves the tracking ledger of one order.
type GetOrderTrackingQuery struct {
	principal identity.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(principal identity.Principal, orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetOrderTrackingQuery{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return GetOrderTrackingQuery{
		principal: principal,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) Principal() identity.Principal { return q.principal }
func (q GetOrderTrackingQuery) OrderID() kernel.UUID          { return q.orderID }

// GetOrderTrackingQueryResponse is the ledger read model, oldest event first.
// Status and Version are those of the order at read time.
type GetOrderTrackingQueryResponse struct {
	OrderID  kernel.UUID
	Status   order.Status
	Version  int
	Tracking []order.TrackingEvent
}
