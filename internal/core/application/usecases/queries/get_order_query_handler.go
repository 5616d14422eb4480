package queries

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// GetOrderQueryHandler loads an order and checks that the caller may read it.
// Missing orders are reported as not found before any ownership check.
type GetOrderQueryHandler struct {
	reader ports.OrderReader
	policy services.AccessPolicy
}

func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		reader: reader,
		policy: services.NewAccessPolicy(),
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(services.ReadOrder, query.Principal(), o); err != nil {
		return nil, err
	}

	return o, nil
}
