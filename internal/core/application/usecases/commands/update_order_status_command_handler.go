package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// UpdateOrderStatusCommandHandler applies vendor and admin status updates.
//
// The update is a read-then-append inside one unit of work. The append is a
// compare-and-swap on the version that was read, so of two concurrent updates based on
// the same version exactly one succeeds and the other fails with a conflict.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	lifecycle  services.OrderLifecycle
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		lifecycle:  lifecycle,
	}
}

// Handle returns the order as it stands after the update.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(services.UpdateOrderStatus, cmd.Principal(), o); err != nil {
		return nil, err
	}

	if err = checkExpectedVersion(o, cmd.ExpectedVersion()); err != nil {
		return nil, err
	}

	readVersion := o.Version()
	event, err := h.lifecycle.Transition(o, cmd.Status(), cmd.Details(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = repo.AppendTracking(ctx, o.ID(), readVersion, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
