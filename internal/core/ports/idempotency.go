package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// IdempotencyStore remembers which order an idempotency key produced, so that a
// retried create returns the original order instead of placing a second one.
// Keys are namespaced by scope (the consumer), so different callers never collide.
type IdempotencyStore interface {
	// Reserve claims key. When the key already completed it returns the order id and
	// reserved == false. A key that is reserved but not completed yet fails with
	// errs.ConcurrencyConflictError.
	Reserve(ctx context.Context, scope, key string) (existing kernel.UUID, reserved bool, err error)

	// Complete binds a reserved key to the order it produced.
	Complete(ctx context.Context, scope, key string, orderID kernel.UUID) error

	// Release frees a reserved key after the create failed.
	Release(ctx context.Context, scope, key string) error
}
