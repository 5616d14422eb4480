// Package redisstore keeps idempotency keys of order creation in Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const pendingMarker = "pending"

// releaseScript deletes a key only while it is still pending, so a late Release cannot
// drop a key that already points at an order.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore implements ports.IdempotencyStore.
//
// A key moves through two states: "pending" while the first request is placing the
// order, then the order id. Both states expire after ttl.
type IdempotencyStore struct {
	client      redis.UniversalClient
	serviceName string
	ttl         time.Duration
}

func NewIdempotencyStore(client redis.UniversalClient, serviceName string, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		client:      client,
		serviceName: serviceName,
		ttl:         ttl,
	}
}

// NewClient creates a client for addr. Ping it before relying on it.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (kernel.UUID, bool, error) {
	k := s.generateKey(scope, key)

	// A second attempt covers a key released between SETNX and GET.
	for range 2 {
		reserved, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
		if err != nil {
			return kernel.UUID{}, false, err
		}
		if reserved {
			return kernel.UUID{}, true, nil
		}

		value, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return kernel.UUID{}, false, err
		}

		if value == pendingMarker {
			return kernel.UUID{}, false, errs.NewConcurrencyConflictError("Idempotency-Key", key, nil)
		}

		id, err := kernel.UUIDFromString(value)
		if err != nil {
			return kernel.UUID{}, false, fmt.Errorf("corrupted idempotency entry %s: %w", k, err)
		}
		return id, false, nil
	}

	return kernel.UUID{}, false, errs.NewConcurrencyConflictError("Idempotency-Key", key, nil)
}

func (s *IdempotencyStore) Complete(ctx context.Context, scope, key string, orderID kernel.UUID) error {
	return s.client.Set(ctx, s.generateKey(scope, key), orderID.String(), s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	return releaseScript.Run(ctx, s.client, []string{s.generateKey(scope, key)}, pendingMarker).Err()
}

func (s *IdempotencyStore) generateKey(scope, key string) string {
	return fmt.Sprintf("%s:idempotency:%s:%s", s.serviceName, scope, key)
}
