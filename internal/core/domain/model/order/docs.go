// Package order contains the Order aggregate of the marketplace and the value objects
// embedded in it.
//
// An Order is placed by one consumer with one vendor. Its items, shipping address,
// payment reference and subtotal are fixed at creation. After creation the order only
// changes by appending TrackingEvent values to its ledger; the current Status is always
// the status of the most recent event and Version is the ledger length, which makes the
// version a monotonic counter suitable for compare-and-swap writes.
//
// Which events may be appended is decided by the lifecycle engine in the domain
// services package; the aggregate itself guards the invariants that must hold no
// matter which policy is active (non-empty ledger, no cancellation after shipping,
// pending only as the first event).
package order
