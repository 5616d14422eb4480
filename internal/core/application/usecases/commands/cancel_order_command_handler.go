package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// CancelOrderCommandHandler cancels orders for their consumer or an admin.
// It shares the read, authorize, compare-and-swap append flow of status updates.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	lifecycle  services.OrderLifecycle
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		lifecycle:  lifecycle,
	}
}

// Handle returns the cancelled order.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if err = h.policy.Authorize(services.CancelOrder, cmd.Principal(), o); err != nil {
		return nil, err
	}

	if err = checkExpectedVersion(o, cmd.ExpectedVersion()); err != nil {
		return nil, err
	}

	readVersion := o.Version()
	event, err := h.lifecycle.Cancel(o, cmd.Reason(), time.Now())
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
