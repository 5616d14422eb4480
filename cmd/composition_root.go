package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/http/auth"
	"marketplace/internal/adapters/out/events"
	"marketplace/internal/adapters/out/persistence"
	"marketplace/internal/adapters/out/persistence/orderrepo"
	"marketplace/internal/adapters/out/redisstore"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *persistence.GormUnitOfWorkFactory
	reader      *orderrepo.GormOrderRepository
	idempotency ports.IdempotencyStore
	lifecycle   services.OrderLifecycle
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewCompositionRoot wires the adapters around gormDB. idempotency may be nil, which
// disables Idempotency-Key handling.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	idempotency ports.IdempotencyStore,
	logger *slog.Logger,
) CompositionRoot {
	m := metrics.New()
	publisher := events.FanOut{
		events.NewMetricsPublisher(m),
		events.NewLogPublisher(logger),
	}

	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  persistence.NewGormUnitOfWorkFactory(gormDB, publisher),
		reader:      orderrepo.NewGormOrderReader(gormDB),
		idempotency: idempotency,
		lifecycle:   services.NewOrderLifecycle(config.TransitionPolicy),
		metrics:     m,
		logger:      logger,
	}
}

const redisPingTimeout = 5 * time.Second

// NewRedisIdempotencyStore returns the redis-backed store, or nil when REDIS_ADDR is unset.
// The server must answer a ping before the store is handed out.
func NewRedisIdempotencyStore(ctx context.Context, config Config) (ports.IdempotencyStore, func() error, error) {
	if config.RedisAddr == "" {
		return nil, func() error { return nil }, nil
	}

	client := redisstore.NewClient(config.RedisAddr, config.RedisPassword, config.RedisDB)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", config.RedisAddr, err)
	}

	return redisstore.NewIdempotencyStore(client, config.ServiceName, config.IdempotencyTTL), client.Close, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.idempotency, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateCountOrdersByStatusQueryHandler() queries.CountOrdersByStatusQueryHandler {
	return queries.NewCountOrdersByStatusQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCountOrdersByStatusQueryHandler(),
		c.metrics,
		c.config.StatusGaugeSchedule,
		c.logger,
	)
}

// CreateHTTPServer builds the echo instance serving the order API.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	tokens, err := auth.NewTokens(c.config.JWTSecret, c.config.JWTIssuer)
	if err != nil {
		return nil, err
	}

	server := http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderTrackingQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)

	return http.NewRouter(server, http.RouterConfig{
		ServiceName: c.config.ServiceName,
		Tokens:      tokens,
		Metrics:     c.metrics,
		Logger:      c.logger,
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
