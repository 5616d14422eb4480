// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and Version are denormalized from the ledger so listings can filter on them
// and appends can compare-and-swap on Version.
type OrderDTO struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey"`
	ConsumerID      string             `gorm:"type:varchar(255);not null;index"`
	VendorID        string             `gorm:"type:varchar(255);not null;index"`
	PaymentID       string             `gorm:"type:varchar(255);not null"`
	PaymentStatus   string             `gorm:"type:varchar(32);not null"`
	Subtotal        decimal.Decimal    `gorm:"type:numeric(14,2);not null"`
	ShippingAddress AddressDTO         `gorm:"embedded;embeddedPrefix:shipping_"`
	Status          string             `gorm:"type:varchar(32);not null;index"`
	Version         int                `gorm:"type:int;not null"`
	CreatedAt       time.Time          `gorm:"not null;index"`
	UpdatedAt       time.Time          `gorm:"not null"`
	Items           []OrderItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Tracking        []TrackingEventDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded in the orders table with the shipping_ prefix.
type AddressDTO struct {
	Line1      string `gorm:"type:varchar(255);not null"`
	Line2      string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(255);not null"`
	Province   string `gorm:"type:varchar(255)"`
	PostalCode string `gorm:"type:varchar(32);not null"`
	Country    string `gorm:"type:char(2);not null"`
}

// OrderItemDTO is one order line. Position keeps the order the lines were placed in.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"type:int;primaryKey;autoIncrement:false"`
	ProductID string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"type:int;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// TrackingEventDTO is one ledger entry. Sequence starts at 1 and equals the order
// version right after the event was appended, so (order_id, sequence) doubles as a
// uniqueness guard against two appends based on the same version.
type TrackingEventDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence       int       `gorm:"type:int;primaryKey;autoIncrement:false"`
	Status         string    `gorm:"type:varchar(32);not null"`
	OccurredAt     time.Time `gorm:"not null"`
	Carrier        *string   `gorm:"type:varchar(100)"`
	TrackingNumber *string   `gorm:"type:varchar(100)"`
	Note           *string   `gorm:"type:varchar(500)"`
}

func (TrackingEventDTO) TableName() string {
	return "order_tracking_events"
}

// fromDomain converts an order aggregate, ledger included, to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   id,
			Position:  i + 1,
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price().Decimal(),
		})
	}

	tracking := make([]TrackingEventDTO, 0, o.Version())
	for i, event := range o.Tracking() {
		tracking = append(tracking, trackingEventFromDomain(id, i+1, event))
	}

	addr := o.ShippingAddress()
	return OrderDTO{
		ID:            id,
		ConsumerID:    o.ConsumerID(),
		VendorID:      o.VendorID(),
		PaymentID:     o.PaymentID(),
		PaymentStatus: o.PaymentStatus().String(),
		Subtotal:      o.Subtotal().Decimal(),
		ShippingAddress: AddressDTO{
			Line1:      addr.Line1(),
			Line2:      addr.Line2(),
			City:       addr.City(),
			Province:   addr.Province(),
			PostalCode: addr.PostalCode(),
			Country:    addr.Country(),
		},
		Status:    o.Status().String(),
		Version:   o.Version(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
		Items:     items,
		Tracking:  tracking,
	}
}

func trackingEventFromDomain(orderID uuid.UUID, sequence int, event order.TrackingEvent) TrackingEventDTO {
	return TrackingEventDTO{
		OrderID:        orderID,
		Sequence:       sequence,
		Status:         event.Status().String(),
		OccurredAt:     event.Timestamp(),
		Carrier:        optional(event.Carrier()),
		TrackingNumber: optional(event.TrackingNumber()),
		Note:           optional(event.Note()),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder. Items and Tracking must be
// loaded in position and sequence order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.Price.Round(kernel.MoneyScale))
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal.Round(kernel.MoneyScale))
	if err != nil {
		return nil, err
	}

	addr, err := order.NewAddress(
		dto.ShippingAddress.Line1,
		dto.ShippingAddress.Line2,
		dto.ShippingAddress.City,
		dto.ShippingAddress.Province,
		dto.ShippingAddress.PostalCode,
		dto.ShippingAddress.Country,
	)
	if err != nil {
		return nil, err
	}

	tracking := make([]order.TrackingEvent, 0, len(dto.Tracking))
	for _, eventDTO := range dto.Tracking {
		status, statusErr := order.ParseStatus(eventDTO.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		event, eventErr := order.NewTrackingEvent(status, eventDTO.OccurredAt, order.TrackingDetails{
			Carrier:        deref(eventDTO.Carrier),
			TrackingNumber: deref(eventDTO.TrackingNumber),
			Note:           deref(eventDTO.Note),
		})
		if eventErr != nil {
			return nil, eventErr
		}
		tracking = append(tracking, event)
	}

	if dto.Version != len(tracking) {
		return nil, errs.NewVersionIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("order %s has version %d but %d tracking events", id, dto.Version, len(tracking)),
		)
	}

	return order.RestoreOrder(
		id,
		dto.ConsumerID,
		dto.VendorID,
		dto.PaymentID,
		paymentStatus,
		items,
		subtotal,
		addr,
		tracking,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
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
