package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Defines values for OrderStatus.
const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Defines values for PaymentStatus.
const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// PaymentStatus defines model for PaymentStatus.
type PaymentStatus string

// Address defines model for Address.
type Address struct {
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	PostalCode string  `json:"postalCode"`
	Province   *string `json:"province,omitempty"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	Price     decimal.Decimal `json:"price"`
	ProductId string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	VendorId  *string         `json:"vendorId,omitempty"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	ConsumerId      *string        `json:"consumerId,omitempty"`
	OrderItems      []NewOrderItem `json:"orderItems"`
	PaymentId       string         `json:"paymentId"`
	PaymentStatus   *PaymentStatus `json:"paymentStatus,omitempty"`
	ShippingAddress Address        `json:"shippingAddress"`
	VendorId        *string        `json:"vendorId,omitempty"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	Carrier         *string     `json:"carrier,omitempty"`
	ExpectedVersion *int        `json:"expectedVersion,omitempty"`
	Note            *string     `json:"note,omitempty"`
	OrderStatus     OrderStatus `json:"orderStatus"`
	TrackingNumber  *string     `json:"trackingNumber,omitempty"`
}

// Cancellation defines model for Cancellation.
type Cancellation struct {
	ExpectedVersion *int    `json:"expectedVersion,omitempty"`
	Reason          *string `json:"reason,omitempty"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Price     string `json:"price"`
	ProductId string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// TrackingEvent defines model for TrackingEvent.
type TrackingEvent struct {
	Carrier        *string     `json:"carrier,omitempty"`
	Note           *string     `json:"note,omitempty"`
	Status         OrderStatus `json:"status"`
	Timestamp      time.Time   `json:"timestamp"`
	TrackingNumber *string     `json:"trackingNumber,omitempty"`
}

// Order defines model for Order.
type Order struct {
	ConsumerId      string             `json:"consumerId"`
	CreatedAt       time.Time          `json:"createdAt"`
	OrderId         openapi_types.UUID `json:"orderId"`
	OrderItems      []OrderItem        `json:"orderItems"`
	OrderStatus     OrderStatus        `json:"orderStatus"`
	PaymentId       string             `json:"paymentId"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus"`
	ShippingAddress Address            `json:"shippingAddress"`
	SubtotalAmount  string             `json:"subtotalAmount"`
	Tracking        []TrackingEvent    `json:"tracking"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	VendorId        string             `json:"vendorId"`
	Version         int                `json:"version"`
}

// OrderList defines model for OrderList.
type OrderList struct {
	Limit  int     `json:"limit"`
	Orders []Order `json:"orders"`
	Page   int     `json:"page"`
	Total  int64   `json:"total"`
}

// Tracking defines model for Tracking.
type Tracking struct {
	OrderId     openapi_types.UUID `json:"orderId"`
	OrderStatus OrderStatus        `json:"orderStatus"`
	Tracking    []TrackingEvent    `json:"tracking"`
	Version     int                `json:"version"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderParams defines parameters for CreateOrder.
type CreateOrderParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Page        *int                `form:"page,omitempty" json:"page,omitempty"`
	Limit       *int                `form:"limit,omitempty" json:"limit,omitempty"`
	OrderStatus *OrderStatus        `form:"orderStatus,omitempty" json:"orderStatus,omitempty"`
	DateFrom    *openapi_types.Date `form:"dateFrom,omitempty" json:"dateFrom,omitempty"`
	DateTo      *openapi_types.Date `form:"dateTo,omitempty" json:"dateTo,omitempty"`
	ConsumerId  *string             `form:"consumerId,omitempty" json:"consumerId,omitempty"`
	VendorId    *string             `form:"vendorId,omitempty" json:"vendorId,omitempty"`
}

// ListUserOrdersParams defines parameters for ListUserOrders.
type ListUserOrdersParams struct {
	Page        *int                `form:"page,omitempty" json:"page,omitempty"`
	Limit       *int                `form:"limit,omitempty" json:"limit,omitempty"`
	OrderStatus *OrderStatus        `form:"orderStatus,omitempty" json:"orderStatus,omitempty"`
	DateFrom    *openapi_types.Date `form:"dateFrom,omitempty" json:"dateFrom,omitempty"`
	DateTo      *openapi_types.Date `form:"dateTo,omitempty" json:"dateTo,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// UpdateOrderStatusJSONRequestBody defines body for UpdateOrderStatus for application/json ContentType.
type UpdateOrderStatusJSONRequestBody = StatusUpdate

// CancelOrderJSONRequestBody defines body for CancelOrder for application/json ContentType.
type CancelOrderJSONRequestBody = Cancellation
