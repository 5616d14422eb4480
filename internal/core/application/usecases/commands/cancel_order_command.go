package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels a pending or processing order. A blank reason is recorded
// as the default cancellation note.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	principal       identity.Principal
	orderID         kernel.UUID
	reason          string
	expectedVersion *int

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(
	principal identity.Principal,
	orderID kernel.UUID,
	reason string,
	expectedVersion *int,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setOrderID(orderID),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Principal() identity.Principal { return c.principal }
func (c CancelOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CancelOrderCommand) Reason() string                { return c.reason }
func (c CancelOrderCommand) ExpectedVersion() *int         { return c.expectedVersion }

func (c *CancelOrderCommand) setPrincipal(principal identity.Principal) error {
	if err := principal.Validate(); err != nil {
		return errs.NewNotAuthenticatedErrorWithCause(err)
	}
	c.principal = principal
	return nil
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setExpectedVersion(expected *int) error {
	if err := validateExpectedVersion(expected); err != nil {
		return err
	}
	c.expectedVersion = expected
	return nil
}
