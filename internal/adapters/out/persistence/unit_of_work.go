// Package persistence provides the GORM-based Unit of Work and database setup.
//
// A unit of work wraps one database transaction. Repositories obtained from it run inside
// that transaction and report the tracking events they wrote back to it; the unit of work
// hands those events to a ports.TrackingEventPublisher once Commit has succeeded, so
// subscribers never see an event that was rolled back.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().AppendTracking(ctx, id, version, event); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is meant for one goroutine; concurrent operations create
// their own instances through the factory.
package persistence

import (
	"context"

	"marketplace/internal/adapters/out/persistence/orderrepo"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool and
// one publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.TrackingEventPublisher
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// publisher may be nil, in which case committed events are dropped.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.TrackingEventPublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
	}
}

// Create produces a new UnitOfWork with its own transaction state and event buffer.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		events:    make([]ports.CommittedEvent, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and buffers the tracking events
// appended within it.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.TrackingEventPublisher
	events    []ports.CommittedEvent
}

// Begin starts the transaction. Calling Begin on an active unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit commits the transaction and then publishes the buffered events.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil

	events := uow.events
	uow.events = make([]ports.CommittedEvent, 0)
	if err != nil {
		return err
	}

	if uow.publisher != nil && len(events) > 0 {
		uow.publisher.Publish(ctx, events)
	}
	return nil
}

// Rollback discards the transaction and the buffered events.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes a
// deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.events = make([]ports.CommittedEvent, 0)
	return err
}

// OrderRepository returns a repository bound to the active transaction, or to the
// plain connection when no transaction has been started.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackEvent buffers an event written through one of this unit of work's repositories.
func (uow *GormUnitOfWork) TrackEvent(event ports.CommittedEvent) {
	uow.events = append(uow.events, event)
}
