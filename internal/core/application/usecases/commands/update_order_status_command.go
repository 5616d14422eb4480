package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks the lifecycle engine to move an order to a new status.
// ExpectedVersion, when set, is the order version the caller based the request on.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	principal       identity.Principal
	orderID         kernel.UUID
	status          order.Status
	details         order.TrackingDetails
	expectedVersion *int

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	principal identity.Principal,
	orderID kernel.UUID,
	status order.Status,
	details order.TrackingDetails,
	expectedVersion *int,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Principal() identity.Principal { return c.principal }
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID          { return c.orderID }
func (c UpdateOrderStatusCommand) Status() order.Status          { return c.status }
func (c UpdateOrderStatusCommand) Details() order.TrackingDetails {
	return c.details
}
func (c UpdateOrderStatusCommand) ExpectedVersion() *int { return c.expectedVersion }

func (c *UpdateOrderStatusCommand) setPrincipal(principal identity.Principal) error {
	if err := principal.Validate(); err != nil {
		return errs.NewNotAuthenticatedErrorWithCause(err)
	}
	c.principal = principal
	return nil
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *UpdateOrderStatusCommand) setExpectedVersion(expected *int) error {
	if err := validateExpectedVersion(expected); err != nil {
		return err
	}
	c.expectedVersion = expected
	return nil
}
