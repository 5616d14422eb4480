package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderCannotBeCancelled is returned when a cancellation is appended after the
	// order has left the cancellable statuses.
	ErrOrderCannotBeCancelled = errs.NewBusinessRuleViolationError("Order cannot be cancelled at this stage")
)

// Order is the aggregate root of the order engine: one consumer buying from one vendor.
//
// Order follows these invariants:
//   - items, shipping address, payment reference and subtotal are written once at creation
//   - subtotal equals the sum of price × quantity over items
//   - the tracking ledger is never empty and only ever grows
//   - Status() is always the status of the last tracking event
//   - Version() is the ledger length, starting at 1
//   - no cancellation is appended once the order is shipped, out for delivery or delivered
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	id            kernel.UUID
	consumerID    string
	vendorID      string
	paymentID     string
	paymentStatus PaymentStatus

	items           []Item
	subtotal        kernel.Money
	shippingAddress Address

	tracking []TrackingEvent

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder places a new order. This is the only way to create a fresh Order.
//
// Parameters:
//   - id: unique identifier for the order
//   - consumerID: purchasing consumer, as issued by the identity provider
//   - vendorID: the single selling vendor
//   - paymentID: opaque reference returned by the payment subsystem
//   - paymentStatus: payment state reported by the payment subsystem
//   - items: at least one validated line
//   - shippingAddress: validated destination
//   - now: placement time; becomes createdAt and the timestamp of the initial event
//
// Returns:
//   - *Order: in status pending with a single pending tracking event and version 1
//   - error: every validation failure, joined
//
// Example:
//
//	price, _ := kernel.MoneyFromString("10.00")
//	item, _ := order.NewItem("p1", 2, price)
//	addr, _ := order.NewAddress("1 Main St", "", "Springfield", "", "62701", "US")
//	o, err := order.NewOrder(kernel.NewUUID(), "C1", "V1", "pay_123",
//	    order.PaymentSucceeded, []order.Item{item}, addr, time.Now())
func NewOrder(
	id kernel.UUID,
	consumerID string,
	vendorID string,
	paymentID string,
	paymentStatus PaymentStatus,
	items []Item,
	shippingAddress Address,
	now time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setParty(&o.consumerID, "consumerId", consumerID),
		o.setParty(&o.vendorID, "vendorId", vendorID),
		o.setParty(&o.paymentID, "paymentId", paymentID),
		o.setPaymentStatus(paymentStatus),
		o.setItems(items),
		o.setShippingAddress(shippingAddress),
	); err != nil {
		return nil, err
	}

	initial, err := NewTrackingEvent(Pending, now, TrackingDetails{})
	if err != nil {
		return nil, err
	}

	o.subtotal = computeSubtotal(o.items)
	o.tracking = []TrackingEvent{initial}
	o.createdAt = initial.Timestamp()
	o.updatedAt = initial.Timestamp()
	return o, nil
}

// RestoreOrder rebuilds an Order from persisted state. It re-checks every invariant,
// so corrupted rows surface as errors instead of as inconsistent aggregates.
func RestoreOrder(
	id kernel.UUID,
	consumerID string,
	vendorID string,
	paymentID string,
	paymentStatus PaymentStatus,
	items []Item,
	subtotal kernel.Money,
	shippingAddress Address,
	tracking []TrackingEvent,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setParty(&o.consumerID, "consumerId", consumerID),
		o.setParty(&o.vendorID, "vendorId", vendorID),
		o.setParty(&o.paymentID, "paymentId", paymentID),
		o.setPaymentStatus(paymentStatus),
		o.setItems(items),
		o.setShippingAddress(shippingAddress),
		o.setSubtotal(subtotal),
		o.setTracking(tracking),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) ConsumerID() string {
	return o.consumerID
}

func (o *Order) VendorID() string {
	return o.vendorID
}

func (o *Order) PaymentID() string {
	return o.paymentID
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

func (o *Order) ShippingAddress() Address {
	return o.shippingAddress
}

// Tracking returns a copy of the ledger, oldest event first.
func (o *Order) Tracking() []TrackingEvent {
	tracking := make([]TrackingEvent, len(o.tracking))
	copy(tracking, o.tracking)
	return tracking
}

// LastEvent returns the most recent tracking event.
func (o *Order) LastEvent() TrackingEvent {
	return o.tracking[len(o.tracking)-1]
}

// Status is derived from the ledger; there is no independently settable status.
func (o *Order) Status() Status {
	return o.LastEvent().Status()
}

// Version is the number of tracking events. Every append increments it by one.
func (o *Order) Version() int {
	return len(o.tracking)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AppendTracking is the only mutation of a placed order.
//
// It enforces the ledger invariants that hold under every transition policy:
//   - the event must be constructed
//   - pending can only be the initial event
//   - cancelled can only follow pending or processing (ErrOrderCannotBeCancelled)
//
// Which targets a caller may request is decided by the lifecycle engine.
func (o *Order) AppendTracking(event TrackingEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	if event.Status() == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderStatus",
			errors.New("pending is only recorded when the order is placed"),
		)
	}

	if event.Status() == Cancelled && !o.Status().IsCancellable() {
		return ErrOrderCannotBeCancelled
	}

	o.tracking = append(o.tracking, event)
	o.updatedAt = event.Timestamp()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParty(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("orderItems", errors.New("an order needs at least one item"))
	}

	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("orderItems[%d]", i), err)
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setShippingAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingAddress", err)
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setSubtotal(subtotal kernel.Money) error {
	if err := subtotal.Validate(); err != nil {
		return err
	}
	if expected := computeSubtotal(o.items); !subtotal.IsEqual(expected) {
		return errs.NewValueIsInvalidErrorWithCause(
			"subtotalAmount",
			fmt.Errorf("%s does not match item total %s", subtotal, expected),
		)
	}
	o.subtotal = subtotal
	return nil
}

func (o *Order) setTracking(tracking []TrackingEvent) error {
	if len(tracking) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("tracking", errors.New("ledger must not be empty"))
	}
	if tracking[0].Status() != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"tracking",
			fmt.Errorf("first event is %s, expected pending", tracking[0].Status()),
		)
	}
	for i, event := range tracking {
		if err := event.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("tracking[%d]", i), err)
		}
	}

	o.tracking = make([]TrackingEvent, len(tracking))
	copy(o.tracking, tracking)
	return nil
}

func computeSubtotal(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
