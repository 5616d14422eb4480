package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository and ports.OrderReader using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker eventTracker
}

// eventTracker collects tracking events written through the repository so they can be
// published once the surrounding transaction commits.
type eventTracker interface {
	TrackEvent(event ports.CommittedEvent)
}

type discardTracker struct{}

func (discardTracker) TrackEvent(ports.CommittedEvent) {}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker eventTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// NewGormOrderReader creates a repository for reads outside of any unit of work.
func NewGormOrderReader(db *gorm.DB) *GormOrderRepository {
	return NewGormOrderRepository(db, discardTracker{})
}

// Add saves a new order with its items and ledger.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	for _, event := range aggregate.Tracking() {
		r.tracker.TrackEvent(ports.CommittedEvent{
			OrderID:  aggregate.ID(),
			VendorID: aggregate.VendorID(),
			Event:    event,
		})
	}
	return nil
}

// Get retrieves an order by ID with its items and full ledger.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Scopes(withAssociations).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AppendTracking appends event as ledger entry expectedVersion+1.
//
// The order row is moved forward with a conditional update on version. Zero affected
// rows means the order is missing or somebody else appended first; the two are told
// apart with a follow-up read. Both writes run in one (possibly nested) transaction.
func (r *GormOrderRepository) AppendTracking(
	ctx context.Context,
	id kernel.UUID,
	expectedVersion int,
	event order.TrackingEvent,
) error {
	if err := errors.Join(id.Validate(), event.Validate()); err != nil {
		return err
	}

	var vendorIDs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", id.Bytes(), expectedVersion).
			UpdateColumns(map[string]any{
				"status":     event.Status().String(),
				"version":    gorm.Expr("version + ?", 1),
				"updated_at": event.Timestamp(),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return missingOrStale(tx, id, expectedVersion)
		}

		eventDTO := trackingEventFromDomain(id.Bytes(), expectedVersion+1, event)
		if err := tx.Create(&eventDTO).Error; err != nil {
			return err
		}

		return tx.Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Pluck("vendor_id", &vendorIDs).Error
	})
	if err != nil {
		return err
	}

	var vendorID string
	if len(vendorIDs) > 0 {
		vendorID = vendorIDs[0]
	}
	r.tracker.TrackEvent(ports.CommittedEvent{
		OrderID:  id,
		VendorID: vendorID,
		Event:    event,
	})
	return nil
}

// List returns one page of orders matching criteria, newest first.
func (r *GormOrderRepository) List(ctx context.Context, criteria ports.OrderCriteria) (ports.OrderPage, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Scopes(matching(criteria)).
		Count(&total).Error; err != nil {
		return ports.OrderPage{}, err
	}

	page := ports.OrderPage{
		Orders: make([]*order.Order, 0),
		Total:  total,
	}
	if total == 0 {
		return page, nil
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Scopes(matching(criteria), withAssociations, paginated(criteria)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&dtos).Error; err != nil {
		return ports.OrderPage{}, err
	}

	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return ports.OrderPage{}, err
		}
		page.Orders = append(page.Orders, o)
	}

	return page, nil
}

// CountByStatus returns how many orders are currently in each status.
// Statuses without orders are absent from the map.
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		status, err := order.ParseStatus(row.Status)
		if err != nil {
			return nil, err
		}
		counts[status] = row.Count
	}
	return counts, nil
}

func missingOrStale(tx *gorm.DB, id kernel.UUID, expectedVersion int) error {
	var versions []int
	if err := tx.Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Pluck("version", &versions).Error; err != nil {
		return err
	}
	if len(versions) == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConcurrencyConflictError("order", expectedVersion, versions[0])
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Tracking", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") })
}

func matching(criteria ports.OrderCriteria) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if criteria.Status != nil {
			db = db.Where("status = ?", criteria.Status.String())
		}
		if criteria.ConsumerID != "" {
			db = db.Where("consumer_id = ?", criteria.ConsumerID)
		}
		if criteria.VendorID != "" {
			db = db.Where("vendor_id = ?", criteria.VendorID)
		}
		if criteria.CreatedFrom != nil {
			db = db.Where("created_at >= ?", criteria.CreatedFrom.UTC())
		}
		if criteria.CreatedBefore != nil {
			db = db.Where("created_at < ?", criteria.CreatedBefore.UTC())
		}
		return db
	}
}

func paginated(criteria ports.OrderCriteria) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if criteria.Offset > 0 {
			db = db.Offset(criteria.Offset)
		}
		if criteria.Limit > 0 {
			db = db.Limit(criteria.Limit)
		}
		return db
	}
}
