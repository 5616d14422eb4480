package commands

import (
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

func validateExpectedVersion(expected *int) error {
	if expected != nil && *expected < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("expectedVersion", fmt.Errorf("%d is not a positive version", *expected))
	}
	return nil
}

// checkExpectedVersion rejects writes based on a version the caller saw earlier but
// which is no longer current.
func checkExpectedVersion(o *order.Order, expected *int) error {
	if expected != nil && *expected != o.Version() {
		return errs.NewConcurrencyConflictError("order", *expected, o.Version())
	}
	return nil
}
