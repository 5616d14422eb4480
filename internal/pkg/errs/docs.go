// Package errs provides standardized error types for the marketplace order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application and translated to transport status codes
// at the edges.
//
// The package includes error types for every failure class the order engine reports:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError and
//     VersionIsInvalidError: malformed or missing input (see IsValidation)
//   - ObjectNotFoundError: the referenced object does not exist
//   - NotAuthenticatedError: missing or invalid credential
//   - AccessDeniedError: valid credential, insufficient rights or wrong ownership
//   - BusinessRuleViolationError: input is well formed but breaks a domain rule
//   - ConcurrencyConflictError: a write was based on a stale version
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works across wrapping
package errs
