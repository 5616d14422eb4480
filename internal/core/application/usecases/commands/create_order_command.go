package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const maxIdempotencyKeyLength = 255

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is an order item as received from the storefront. VendorID is optional per
// line; when present it must match the order's vendor.
type OrderLine struct {
	ProductID string
	VendorID  string
	Quantity  int
	Price     decimal.Decimal
}

// CreateOrderCommand places an order for one vendor.
//
// The vendor is the explicit vendorID when given, otherwise the vendor of the first
// line. Lines from a different vendor are rejected: multi-vendor carts are split into
// one order per vendor before they reach this command.
//
// Example:
//
//	cmd, err := commands.NewCreateOrderCommand(principal, "", "V1", "pay_123",
//	    order.PaymentSucceeded,
//	    []commands.OrderLine{{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("10.00")}},
//	    address, r.Header.Get("Idempotency-Key"))
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	principal       identity.Principal
	consumerID      string
	vendorID        string
	paymentID       string
	paymentStatus   order.PaymentStatus
	items           []order.Item
	shippingAddress order.Address
	idempotencyKey  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape; ownership is checked by the handler.
// consumerID may be blank, meaning "the caller".
func NewCreateOrderCommand(
	principal identity.Principal,
	consumerID string,
	vendorID string,
	paymentID string,
	paymentStatus order.PaymentStatus,
	lines []OrderLine,
	shippingAddress order.Address,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		consumerID: strings.TrimSpace(consumerID),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setPaymentID(paymentID),
		cmd.setPaymentStatus(paymentStatus),
		cmd.setLines(vendorID, lines),
		cmd.setShippingAddress(shippingAddress),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Principal() identity.Principal { return c.principal }
func (c CreateOrderCommand) ConsumerID() string            { return c.consumerID }
func (c CreateOrderCommand) VendorID() string              { return c.vendorID }
func (c CreateOrderCommand) PaymentID() string             { return c.paymentID }
func (c CreateOrderCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}
func (c CreateOrderCommand) ShippingAddress() order.Address { return c.shippingAddress }
func (c CreateOrderCommand) IdempotencyKey() string         { return c.idempotencyKey }

// Items returns a copy of the validated order items.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setPrincipal(principal identity.Principal) error {
	if err := principal.Validate(); err != nil {
		return errs.NewNotAuthenticatedErrorWithCause(err)
	}
	c.principal = principal
	return nil
}

func (c *CreateOrderCommand) setPaymentID(paymentID string) error {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return errs.NewValueIsRequiredError("paymentId")
	}
	c.paymentID = paymentID
	return nil
}

func (c *CreateOrderCommand) setPaymentStatus(status order.PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.paymentStatus = status
	return nil
}

func (c *CreateOrderCommand) setLines(vendorID string, lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("orderItems", errors.New("an order needs at least one item"))
	}

	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		vendorID = strings.TrimSpace(lines[0].VendorID)
	}
	if vendorID == "" {
		return errs.NewValueIsRequiredError("vendorId")
	}

	items := make([]order.Item, 0, len(lines))
	var problems []error
	for i, line := range lines {
		if lineVendor := strings.TrimSpace(line.VendorID); lineVendor != "" && lineVendor != vendorID {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("orderItems[%d].vendorId", i),
				fmt.Errorf("%s differs from order vendor %s", lineVendor, vendorID),
			))
			continue
		}

		price, err := kernel.NewMoney(line.Price)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("orderItems[%d].price", i), err))
			continue
		}

		item, err := order.NewItem(line.ProductID, line.Quantity, price)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("orderItems[%d]", i), err))
			continue
		}
		items = append(items, item)
	}

	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.vendorID = vendorID
	c.items = items
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingAddress", err)
	}
	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("Idempotency-Key", len(key), 1, maxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}
