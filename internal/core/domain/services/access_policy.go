package services

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// Operation names an action guarded by AccessPolicy.
type Operation int

const (
	CreateOrder Operation = iota + 1
	ReadOrder
	ListOrders
	ListUserOrders
	UpdateOrderStatus
	CancelOrder
	ReadTracking
)

func (op Operation) String() string {
	switch op {
	case CreateOrder:
		return "create_order"
	case ReadOrder:
		return "read_order"
	case ListOrders:
		return "list_orders"
	case ListUserOrders:
		return "list_user_orders"
	case UpdateOrderStatus:
		return "update_order_status"
	case CancelOrder:
		return "cancel_order"
	case ReadTracking:
		return "read_tracking"
	default:
		return "unknown"
	}
}

// ListScope restricts a listing to one consumer and/or one vendor.
// Empty fields are unrestricted.
type ListScope struct {
	ConsumerID string
	VendorID   string
}

// AccessPolicy is the authorization guard. Admins are always allowed; consumers and
// vendors only ever see or touch orders they are party to.
//
//	operation        consumer          vendor            admin
//	create           self only         denied            any consumer
//	read / tracking  own orders        own orders        any
//	list             denied            scoped to self    any filter
//	list by user     self              self              any user
//	update status    denied            own orders        any
//	cancel           own orders        denied            any
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// Authorize checks an operation on an existing order.
func (AccessPolicy) Authorize(op Operation, p identity.Principal, o *order.Order) error {
	if err := p.Validate(); err != nil {
		return errs.NewNotAuthenticatedErrorWithCause(err)
	}
	if err := o.Validate(); err != nil {
		return err
	}

	if p.IsAdmin() {
		return nil
	}

	switch op {
	case ReadOrder, ReadTracking:
		if isParty(p, o) {
			return nil
		}
		return errs.NewAccessDeniedError(op.String(), "order belongs to another "+p.Role().String())

	case UpdateOrderStatus:
		if p.Role() != identity.Vendor {
			return errs.NewAccessDeniedError(op.String(), "only the owning vendor may update the status")
		}
		if !p.Is(o.VendorID()) {
			return errs.NewAccessDeniedError(op.String(), "order belongs to another vendor")
		}
		return nil

	case CancelOrder:
		if p.Role() != identity.Consumer {
			return errs.NewAccessDeniedError(op.String(), "only the owning consumer may cancel")
		}
		if !p.Is(o.ConsumerID()) {
			return errs.NewAccessDeniedError(op.String(), "order belongs to another consumer")
		}
		return nil

	case CreateOrder, ListOrders, ListUserOrders:
		return errs.NewValueIsInvalidErrorWithCause("operation", errors.New(op.String()+" is not bound to an order"))

	default:
		return errs.NewValueIsInvalidErrorWithCause("operation", errors.New("unknown operation"))
	}
}

// AuthorizeCreate returns the consumer an order may be placed for. A consumer places
// orders for itself; requestedConsumerID may be blank or must name the caller. An admin
// may place an order for any consumer and has to name one.
func (AccessPolicy) AuthorizeCreate(p identity.Principal, requestedConsumerID string) (string, error) {
	if err := p.Validate(); err != nil {
		return "", errs.NewNotAuthenticatedErrorWithCause(err)
	}

	requested := strings.TrimSpace(requestedConsumerID)

	switch p.Role() {
	case identity.Admin:
		if requested == "" {
			return "", errs.NewValueIsRequiredError("consumerId")
		}
		return requested, nil

	case identity.Consumer:
		if requested != "" && !p.Is(requested) {
			return "", errs.NewAccessDeniedError(CreateOrder.String(), "cannot place an order for another consumer")
		}
		return p.SubjectID(), nil

	default:
		return "", errs.NewAccessDeniedError(CreateOrder.String(), "only consumers place orders")
	}
}

// ScopeList combines the caller's implicit scope with the filters it asked for.
// Asking for another party's orders is denied rather than silently emptied.
// Consumers are denied; their listing goes through ScopeUserList.
func (AccessPolicy) ScopeList(p identity.Principal, requested ListScope) (ListScope, error) {
	if err := p.Validate(); err != nil {
		return ListScope{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}

	requested.ConsumerID = strings.TrimSpace(requested.ConsumerID)
	requested.VendorID = strings.TrimSpace(requested.VendorID)

	switch p.Role() {
	case identity.Admin:
		return requested, nil

	case identity.Vendor:
		if requested.VendorID != "" && !p.Is(requested.VendorID) {
			return ListScope{}, errs.NewAccessDeniedError(ListOrders.String(), "cannot list another vendor's orders")
		}
		requested.VendorID = p.SubjectID()
		return requested, nil

	default:
		return ListScope{}, errs.NewAccessDeniedError(ListOrders.String(), "consumers list their orders by user")
	}
}

// ScopeUserList scopes GET /orders/user/{userId}. Callers may list their own orders;
// admins may list any consumer's orders.
func (AccessPolicy) ScopeUserList(p identity.Principal, userID string) (ListScope, error) {
	if err := p.Validate(); err != nil {
		return ListScope{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ListScope{}, errs.NewValueIsRequiredError("userId")
	}

	if p.IsAdmin() {
		return ListScope{ConsumerID: userID}, nil
	}

	if !p.Is(userID) {
		return ListScope{}, errs.NewAccessDeniedError(ListUserOrders.String(), "cannot list another user's orders")
	}

	if p.Role() == identity.Vendor {
		return ListScope{VendorID: userID}, nil
	}
	return ListScope{ConsumerID: userID}, nil
}

func isParty(p identity.Principal, o *order.Order) bool {
	switch p.Role() {
	case identity.Consumer:
		return p.Is(o.ConsumerID())
	case identity.Vendor:
		return p.Is(o.VendorID())
	default:
		return false
	}
}
