package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrAccessDenied          = errors.New("access denied")
	ErrBusinessRuleViolation = errors.New("business rule violation")
	ErrConcurrencyConflict   = errors.New("concurrency conflict")
)

// NotAuthenticatedError reports a missing, malformed or expired credential.
type NotAuthenticatedError struct {
	Cause error
}

func NewNotAuthenticatedError() *NotAuthenticatedError {
	return &NotAuthenticatedError{}
}

func NewNotAuthenticatedErrorWithCause(cause error) *NotAuthenticatedError {
	return &NotAuthenticatedError{Cause: cause}
}

func (e *NotAuthenticatedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", ErrNotAuthenticated, e.Cause)
	}
	return ErrNotAuthenticated.Error()
}

func (e *NotAuthenticatedError) Unwrap() error {
	return ErrNotAuthenticated
}

// AccessDeniedError reports that an authenticated caller may not perform Operation.
type AccessDeniedError struct {
	Operation string
	Reason    string
}

func NewAccessDeniedError(operation, reason string) *AccessDeniedError {
	return &AccessDeniedError{
		Operation: operation,
		Reason:    reason,
	}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s (reason: %s)", ErrAccessDenied, e.Operation, e.Reason)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// BusinessRuleViolationError reports well formed input rejected by a domain rule.
// Rule is a human readable sentence safe to return to callers.
type BusinessRuleViolationError struct {
	Rule  string
	Cause error
}

func NewBusinessRuleViolationError(rule string) *BusinessRuleViolationError {
	return &BusinessRuleViolationError{Rule: rule}
}

func NewBusinessRuleViolationErrorWithCause(rule string, cause error) *BusinessRuleViolationError {
	return &BusinessRuleViolationError{
		Rule:  rule,
		Cause: cause,
	}
}

func (e *BusinessRuleViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrBusinessRuleViolation, e.Rule, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrBusinessRuleViolation, e.Rule)
}

func (e *BusinessRuleViolationError) Unwrap() error {
	return ErrBusinessRuleViolation
}

// ConcurrencyConflictError reports a write based on a version that is no longer current.
// Actual is nil when the current version is unknown to the caller.
type ConcurrencyConflictError struct {
	ParamName string
	Expected  any
	Actual    any
}

func NewConcurrencyConflictError(paramName string, expected, actual any) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{
		ParamName: paramName,
		Expected:  expected,
		Actual:    actual,
	}
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Actual == nil {
		return fmt.Sprintf("%s: %s, expected version %v is stale", ErrConcurrencyConflict, e.ParamName, e.Expected)
	}
	return fmt.Sprintf("%s: %s, expected version %v but found %v",
		ErrConcurrencyConflict, e.ParamName, e.Expected, e.Actual)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
