package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

type GetOrderTrackingQueryHandler struct {
	reader ports.OrderReader
	policy services.AccessPolicy
}

func NewGetOrderTrackingQueryHandler(reader ports.OrderReader) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{
		reader: reader,
		policy: services.NewAccessPolicy(),
	}
}

func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	if err = h.policy.Authorize(services.ReadTracking, query.Principal(), o); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	return GetOrderTrackingQueryResponse{
		OrderID:  o.ID(),
		Status:   o.Status(),
		Version:  o.Version(),
		Tracking: o.Tracking(),
	}, nil
}
