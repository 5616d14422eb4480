package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// ListOrdersQueryHandler resolves the caller's scope and reads one page of orders.
// The scope is combined with the filters, so Total always reflects what the caller
// is allowed to see.
type ListOrdersQueryHandler struct {
	reader ports.OrderReader
	policy services.AccessPolicy
}

func NewListOrdersQueryHandler(reader ports.OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		reader: reader,
		policy: services.NewAccessPolicy(),
	}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	scope, err := h.scope(query)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	criteria := ports.OrderCriteria{
		Status:      query.Status(),
		ConsumerID:  scope.ConsumerID,
		VendorID:    scope.VendorID,
		CreatedFrom: query.DateFrom(),
		Offset:      query.Offset(),
		Limit:       query.Limit(),
	}
	if dateTo := query.DateTo(); dateTo != nil {
		before := dateTo.AddDate(0, 0, 1)
		criteria.CreatedBefore = &before
	}

	page, err := h.reader.List(ctx, criteria)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		Page:   query.Page(),
		Limit:  query.Limit(),
		Total:  page.Total,
		Orders: page.Orders,
	}, nil
}

func (h ListOrdersQueryHandler) scope(query ListOrdersQuery) (services.ListScope, error) {
	if query.ByUser() {
		return h.policy.ScopeUserList(query.Principal(), query.UserID())
	}
	return h.policy.ScopeList(query.Principal(), services.ListScope{
		ConsumerID: query.ConsumerID(),
		VendorID:   query.VendorID(),
	})
}
