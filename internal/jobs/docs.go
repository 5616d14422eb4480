// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. OrderStatusGaugeJob - counts orders per status and sets the orders_by_status gauge
//
// # Usage
//
//	jobManager := jobs.NewJobManager(countOrdersHandler, metrics, "*/30 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("failed to start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and the gauge keeps its previous values until the next
// tick succeeds. An invalid schedule fails StartAll.
package jobs
