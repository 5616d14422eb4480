// Package events delivers committed tracking events to in-process subscribers.
package events

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

type trackingEventRecorder interface {
	RecordTrackingEvent(status string)
}

// MetricsPublisher counts committed tracking events per status.
type MetricsPublisher struct {
	recorder trackingEventRecorder
}

func NewMetricsPublisher(recorder trackingEventRecorder) *MetricsPublisher {
	return &MetricsPublisher{recorder: recorder}
}

func (p *MetricsPublisher) Publish(_ context.Context, events []ports.CommittedEvent) {
	for _, e := range events {
		p.recorder.RecordTrackingEvent(e.Event.Status().String())
	}
}

// LogPublisher writes one structured record per committed event.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "tracking_events")}
}

func (p *LogPublisher) Publish(ctx context.Context, events []ports.CommittedEvent) {
	for _, e := range events {
		p.logger.InfoContext(ctx, "Tracking event committed",
			"order_id", e.OrderID.String(),
			"vendor_id", e.VendorID,
			"status", e.Event.Status().String(),
			"occurred_at", e.Event.Timestamp(),
		)
	}
}

// FanOut hands every batch to each publisher in turn.
type FanOut []ports.TrackingEventPublisher

func (f FanOut) Publish(ctx context.Context, events []ports.CommittedEvent) {
	for _, p := range f {
		p.Publish(ctx, events)
	}
}
