package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state recorded by a tracking event.
//
//	pending ──> processing ──> shipped ──> out_for_delivery ──> delivered
//	   │             │
//	   └─────────────┴──> cancelled
//
// delivered and cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Processing
	Shipped
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:        "pending",
		Processing:     "processing",
		Shipped:        "shipped",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Processing, Shipped, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts the wire form (e.g. "out_for_delivery") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("orderStatus", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderStatus", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsCancellable reports whether an order in this status may still be cancelled.
func (s Status) IsCancellable() bool {
	return s == Pending || s == Processing
}

// IsTerminal reports whether the lifecycle has ended.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}
