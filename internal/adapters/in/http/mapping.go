package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toOrderResponse(o *order.Order) servers.Order {
	items := o.Items()
	orderItems := make([]servers.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = servers.OrderItem{
			ProductId: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price().String(),
		}
	}

	return servers.Order{
		OrderId:         o.ID().Bytes(),
		ConsumerId:      o.ConsumerID(),
		VendorId:        o.VendorID(),
		PaymentId:       o.PaymentID(),
		PaymentStatus:   servers.PaymentStatus(o.PaymentStatus().String()),
		OrderItems:      orderItems,
		SubtotalAmount:  o.Subtotal().String(),
		ShippingAddress: toAddressResponse(o.ShippingAddress()),
		OrderStatus:     servers.OrderStatus(o.Status().String()),
		Version:         o.Version(),
		Tracking:        toTrackingResponse(o.Tracking()),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func toAddressResponse(a order.Address) servers.Address {
	return servers.Address{
		Line1:      a.Line1(),
		Line2:      optional(a.Line2()),
		City:       a.City(),
		Province:   optional(a.Province()),
		PostalCode: a.PostalCode(),
		Country:    a.Country(),
	}
}

func toTrackingResponse(events []order.TrackingEvent) []servers.TrackingEvent {
	out := make([]servers.TrackingEvent, len(events))
	for i, event := range events {
		out[i] = servers.TrackingEvent{
			Status:         servers.OrderStatus(event.Status().String()),
			Timestamp:      event.Timestamp(),
			Carrier:        optional(event.Carrier()),
			TrackingNumber: optional(event.TrackingNumber()),
			Note:           optional(event.Note()),
		}
	}
	return out
}

func toOrderListResponse(page queries.ListOrdersQueryResponse) servers.OrderList {
	orders := make([]servers.Order, len(page.Orders))
	for i, o := range page.Orders {
		orders[i] = toOrderResponse(o)
	}
	return servers.OrderList{
		Page:   page.Page,
		Limit:  page.Limit,
		Total:  page.Total,
		Orders: orders,
	}
}

func toTrackingLedgerResponse(ledger queries.GetOrderTrackingQueryResponse) servers.Tracking {
	return servers.Tracking{
		OrderId:     ledger.OrderID.Bytes(),
		OrderStatus: servers.OrderStatus(ledger.Status.String()),
		Version:     ledger.Version,
		Tracking:    toTrackingResponse(ledger.Tracking),
	}
}

func toListFilter(
	page, limit *int,
	status *servers.OrderStatus,
	dateFrom, dateTo *openapi_types.Date,
	consumerID, vendorID *string,
) (queries.ListFilter, error) {
	filter := queries.ListFilter{
		Page:       page,
		Limit:      limit,
		ConsumerID: deref(consumerID),
		VendorID:   deref(vendorID),
		DateFrom:   dateTime(dateFrom),
		DateTo:     dateTime(dateTo),
	}

	if status != nil {
		parsed, err := order.ParseStatus(string(*status))
		if err != nil {
			return queries.ListFilter{}, err
		}
		filter.Status = &parsed
	}

	return filter, nil
}

func dateTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
