package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// DefaultCancellationNote is recorded when a cancellation carries no reason.
const DefaultCancellationNote = "Cancelled by customer"

var (
	// ErrInvalidStatusTransition is returned for targets outside of the settable statuses.
	ErrInvalidStatusTransition = errs.NewValueIsInvalidErrorWithCause(
		"orderStatus",
		errors.New("Invalid status transition"),
	)

	// ErrOrderIsFinal is returned when a delivered or cancelled order receives another event.
	ErrOrderIsFinal = errs.NewBusinessRuleViolationError("Order is already in a final state")
)

// TransitionPolicy selects how strictly OrderLifecycle validates status changes.
type TransitionPolicy int

const (
	// PermissiveTransitions accepts any settable target from any non-final status,
	// so an order may jump from pending straight to delivered.
	PermissiveTransitions TransitionPolicy = iota

	// StrictTransitions additionally requires the (current, target) pair to appear in
	// the transition table.
	StrictTransitions
)

// ParseTransitionPolicy reads the configuration form: "permissive" or "strict".
func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return PermissiveTransitions, nil
	case "strict":
		return StrictTransitions, nil
	default:
		return PermissiveTransitions, errs.NewValueIsInvalidErrorWithCause(
			"transitionPolicy",
			fmt.Errorf("%q is neither permissive nor strict", s),
		)
	}
}

func (p TransitionPolicy) String() string {
	if p == StrictTransitions {
		return "strict"
	}
	return "permissive"
}

// settableStatuses can be requested through a status update. pending is only ever the
// initial event and cancelled has its own operation.
func settableStatuses() map[order.Status]bool {
	return map[order.Status]bool{
		order.Processing:     true,
		order.Shipped:        true,
		order.OutForDelivery: true,
		order.Delivered:      true,
	}
}

// transitionTable is consulted under StrictTransitions only.
func transitionTable() map[order.Status][]order.Status {
	return map[order.Status][]order.Status{
		order.Pending:        {order.Processing},
		order.Processing:     {order.Shipped},
		order.Shipped:        {order.OutForDelivery, order.Delivered},
		order.OutForDelivery: {order.Delivered},
	}
}

// OrderLifecycle is the lifecycle engine. It validates requested changes and appends
// the resulting tracking event to the order; persisting the event is the caller's job.
//
// Example:
//
//	lifecycle := services.NewOrderLifecycle(services.PermissiveTransitions)
//	event, err := lifecycle.Transition(o, order.Shipped, order.TrackingDetails{
//	    Carrier: "DHL", TrackingNumber: "JD0001",
//	}, time.Now())
type OrderLifecycle struct {
	policy TransitionPolicy
}

func NewOrderLifecycle(policy TransitionPolicy) OrderLifecycle {
	return OrderLifecycle{policy: policy}
}

func (l OrderLifecycle) Policy() TransitionPolicy {
	return l.policy
}

// CanTransition reports whether target may follow the order's current status.
//
// Returns:
//   - ErrInvalidStatusTransition (validation) if target is not settable
//   - ErrOrderIsFinal (business rule) if the order is delivered or cancelled
//   - a business rule violation if the strict table forbids the pair
func (l OrderLifecycle) CanTransition(current, target order.Status) error {
	if !settableStatuses()[target] {
		return ErrInvalidStatusTransition
	}

	if current.IsTerminal() {
		return ErrOrderIsFinal
	}

	if l.policy == StrictTransitions && !containsStatus(transitionTable()[current], target) {
		return errs.NewBusinessRuleViolationErrorWithCause(
			"Invalid status transition",
			fmt.Errorf("%s cannot move to %s", current, target),
		)
	}

	return nil
}

// Transition appends an event moving o to target.
func (l OrderLifecycle) Transition(
	o *order.Order,
	target order.Status,
	details order.TrackingDetails,
	at time.Time,
) (order.TrackingEvent, error) {
	if err := o.Validate(); err != nil {
		return order.TrackingEvent{}, err
	}

	if err := l.CanTransition(o.Status(), target); err != nil {
		return order.TrackingEvent{}, err
	}

	event, err := order.NewTrackingEvent(target, at, details)
	if err != nil {
		return order.TrackingEvent{}, err
	}

	if err = o.AppendTracking(event); err != nil {
		return order.TrackingEvent{}, err
	}

	return event, nil
}

// Cancel appends a cancelled event whose note is reason, or DefaultCancellationNote
// when reason is blank. Orders past processing fail with order.ErrOrderCannotBeCancelled
// and keep their ledger unchanged.
func (l OrderLifecycle) Cancel(o *order.Order, reason string, at time.Time) (order.TrackingEvent, error) {
	if err := o.Validate(); err != nil {
		return order.TrackingEvent{}, err
	}

	if !o.Status().IsCancellable() {
		return order.TrackingEvent{}, order.ErrOrderCannotBeCancelled
	}

	note := strings.TrimSpace(reason)
	if note == "" {
		note = DefaultCancellationNote
	}

	event, err := order.NewTrackingEvent(order.Cancelled, at, order.TrackingDetails{Note: note})
	if err != nil {
		return order.TrackingEvent{}, err
	}

	if err = o.AppendTracking(event); err != nil {
		return order.TrackingEvent{}, err
	}

	return event, nil
}

func containsStatus(statuses []order.Status, target order.Status) bool {
	for _, s := range statuses {
		if s == target {
			return true
		}
	}
	return false
}
