package redisstore_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/redisstore"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type IdempotencyStoreTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
	store     *redisstore.IdempotencyStore
}

func (suite *IdempotencyStoreTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redisstore.NewClient(endpoint, "", 0)
	suite.Require().NoError(suite.client.Ping(ctx).Err())
	suite.store = redisstore.NewIdempotencyStore(suite.client, "orders", time.Minute)
}

func (suite *IdempotencyStoreTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushDB(context.Background()).Err())
}

func (suite *IdempotencyStoreTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *IdempotencyStoreTestSuite) TestReserveCompleteReplay() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	_, reserved, err := suite.store.Reserve(ctx, "C1", "key-1")
	suite.Require().NoError(err)
	suite.True(reserved)

	suite.Require().NoError(suite.store.Complete(ctx, "C1", "key-1", orderID))

	existing, reserved, err := suite.store.Reserve(ctx, "C1", "key-1")
	suite.Require().NoError(err)
	suite.False(reserved)
	suite.True(orderID.IsEqual(existing))

	ttl, err := suite.client.TTL(ctx, "orders:idempotency:C1:key-1").Result()
	suite.Require().NoError(err)
	suite.Positive(ttl)
}

func (suite *IdempotencyStoreTestSuite) TestReserve_InFlightKey_Conflicts() {
	ctx := context.Background()

	_, reserved, err := suite.store.Reserve(ctx, "C1", "key-1")
	suite.Require().NoError(err)
	suite.True(reserved)

	_, reserved, err = suite.store.Reserve(ctx, "C1", "key-1")
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
	suite.False(reserved)
}

func (suite *IdempotencyStoreTestSuite) TestReserve_KeysAreScopedPerConsumer() {
	ctx := context.Background()

	_, reserved, err := suite.store.Reserve(ctx, "C1", "key-1")
	suite.Require().NoError(err)
	suite.True(reserved)

	_, reserved, err = suite.store.Reserve(ctx, "C2", "key-1")
	suite.Require().NoError(err)
	suite.True(reserved)
}

func (suite *IdempotencyStoreTestSuite) TestRelease_FreesPendingKeyOnly() {
	ctx := context.Background()

	_, _, err := suite.store.Reserve(ctx, "C1", "failed")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Release(ctx, "C1", "failed"))

	_, reserved, err := suite.store.Reserve(ctx, "C1", "failed")
	suite.Require().NoError(err)
	suite.True(reserved, "released key can be reserved again")

	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.store.Complete(ctx, "C1", "failed", orderID))
	suite.Require().NoError(suite.store.Release(ctx, "C1", "failed"))

	existing, reserved, err := suite.store.Reserve(ctx, "C1", "failed")
	suite.Require().NoError(err)
	suite.False(reserved)
	suite.True(orderID.IsEqual(existing))
}

func TestIdempotencyStoreTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(IdempotencyStoreTestSuite))
}
