// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries never open a unit of work; they read through ports.OrderReader and apply the
// same authorization guard as commands.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order visible to the principal.
//
// Example:
//
//	query, err := NewGetOrderQuery(principal, orderID)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	principal identity.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(principal identity.Principal, orderID kernel.UUID) (GetOrderQuery, error) {
	q := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := principal.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	q.principal = principal
	q.orderID = orderID
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Principal() identity.Principal { return q.principal }
func (q GetOrderQuery) OrderID() kernel.UUID          { return q.orderID }
