package queries

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

type CountOrdersByStatusQueryHandler struct {
	reader ports.OrderReader
}

func NewCountOrdersByStatusQueryHandler(reader ports.OrderReader) CountOrdersByStatusQueryHandler {
	return CountOrdersByStatusQueryHandler{reader: reader}
}

func (h CountOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountOrdersByStatusQuery,
) (CountOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts, err := h.reader.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	response := make(CountOrdersByStatusQueryResponse, len(order.Statuses()))
	for _, status := range order.Statuses() {
		response[status] = counts[status]
	}
	return response, nil
}
