package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultStatusGaugeSchedule refreshes the gauge every 30 seconds.
const DefaultStatusGaugeSchedule = "*/30 * * * * *"

type ordersByStatusCounter interface {
	Handle(ctx context.Context, query queries.CountOrdersByStatusQuery) (queries.CountOrdersByStatusQueryResponse, error)
}

type ordersByStatusGauge interface {
	SetOrdersByStatus(counts map[string]int64)
}

// OrderStatusGaugeJob periodically counts orders per status and publishes the counts
// to the orders_by_status gauge.
type OrderStatusGaugeJob struct {
	handler  ordersByStatusCounter
	gauge    ordersByStatusGauge
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderStatusGaugeJob creates the job. schedule is a six-field cron expression
// (seconds first); an empty schedule means DefaultStatusGaugeSchedule.
func NewOrderStatusGaugeJob(
	handler ordersByStatusCounter,
	gauge ordersByStatusGauge,
	schedule string,
	logger *slog.Logger,
) *OrderStatusGaugeJob {
	if schedule == "" {
		schedule = DefaultStatusGaugeSchedule
	}
	return &OrderStatusGaugeJob{
		handler:  handler,
		gauge:    gauge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_status_gauge_job"),
	}
}

// Start refreshes the gauge once and then on every tick of the schedule.
func (j *OrderStatusGaugeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if runErr := j.Run(ctx); runErr != nil {
			j.logger.ErrorContext(ctx, "Order status gauge job failed", "error", runErr)
		}
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err = j.Run(ctx); err != nil {
		j.logger.WarnContext(ctx, "Initial order status count failed", "error", err)
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Order status gauge job started", "schedule", j.schedule)
	return nil
}

// Run performs a single refresh.
func (j *OrderStatusGaugeJob) Run(ctx context.Context) error {
	counts, err := j.handler.Handle(ctx, queries.NewCountOrdersByStatusQuery())
	if err != nil {
		return err
	}

	values := make(map[string]int64, len(counts))
	for status, count := range counts {
		values[status.String()] = count
	}
	j.gauge.SetOrdersByStatus(values)
	return nil
}

// Stop stops the schedule and waits for a running refresh to finish.
func (j *OrderStatusGaugeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order status gauge job stopped")
}
