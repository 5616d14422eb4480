package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

const completeAttempts = 2

// CreateOrderResult identifies the order a create produced. Replayed is true when an
// idempotency key matched an earlier create and no new order was placed.
type CreateOrderResult struct {
	OrderID  kernel.UUID
	Replayed bool
}

// CreateOrderCommandHandler places orders.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, idempotencyStore, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// result.OrderID is pending with a single tracking event
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	idempotency ports.IdempotencyStore
	policy      services.AccessPolicy
	logger      *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// idempotency may be nil, in which case idempotency keys are ignored.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	idempotency ports.IdempotencyStore,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		policy:      services.NewAccessPolicy(),
		logger:      logger.With("component", "create_order_handler"),
	}
}

// Handle authorizes the caller, places the order in a transaction and, when the command
// carries an idempotency key, records which order the key produced.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	consumerID, err := h.policy.AuthorizeCreate(cmd.Principal(), cmd.ConsumerID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	key := cmd.IdempotencyKey()
	useKey := key != "" && h.idempotency != nil
	if useKey {
		existing, reserved, reserveErr := h.idempotency.Reserve(ctx, consumerID, key)
		if reserveErr != nil {
			return CreateOrderResult{}, reserveErr
		}
		if !reserved {
			return CreateOrderResult{OrderID: existing, Replayed: true}, nil
		}
	}

	placed, err := h.place(ctx, consumerID, cmd)
	if err != nil {
		if useKey {
			if releaseErr := h.idempotency.Release(ctx, consumerID, key); releaseErr != nil {
				h.logger.WarnContext(ctx, "Failed to release idempotency key", "error", releaseErr)
			}
		}
		return CreateOrderResult{}, err
	}

	if useKey {
		h.completeKey(ctx, consumerID, key, placed.ID())
	}

	return CreateOrderResult{OrderID: placed.ID()}, nil
}

// completeKey binds key to the placed order, retrying once. If the key still cannot be
// completed it is released: a retry then places a new order instead of being refused
// with a conflict until the reservation expires.
func (h *CreateOrderCommandHandler) completeKey(ctx context.Context, consumerID, key string, orderID kernel.UUID) {
	var err error
	for range completeAttempts {
		if err = h.idempotency.Complete(ctx, consumerID, key, orderID); err == nil {
			return
		}
	}

	h.logger.ErrorContext(ctx, "Failed to complete idempotency key",
		"order_id", orderID.String(), "error", err)
	if releaseErr := h.idempotency.Release(ctx, consumerID, key); releaseErr != nil {
		h.logger.WarnContext(ctx, "Failed to release idempotency key", "error", releaseErr)
	}
}

func (h *CreateOrderCommandHandler) place(ctx context.Context, consumerID string, cmd CreateOrderCommand) (*order.Order, error) {
	placed, err := order.NewOrder(
		kernel.NewUUID(),
		consumerID,
		cmd.VendorID(),
		cmd.PaymentID(),
		cmd.PaymentStatus(),
		cmd.Items(),
		cmd.ShippingAddress(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}
