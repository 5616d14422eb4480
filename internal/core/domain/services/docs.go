// Package services provides the domain services of the order engine: behaviour that
// needs more context than a single Order can hold.
//
// The package includes:
//   - OrderLifecycle: decides which tracking events may be appended and applies the
//     cancellation policy, under a configurable TransitionPolicy
//   - AccessPolicy: the single authorization guard for every order operation,
//     parameterized by (operation, principal, order)
package services
