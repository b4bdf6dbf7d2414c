package orderrepo

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// activeAssignmentStatuses are the statuses in which an order occupies its
// bound agent.
var activeAssignmentStatuses = []int{
	int(order.Assigned),
	int(order.PickedUp),
	int(order.OnTheWay),
}

// GormOrderRepository implements OrderRepository using GORM.
//
// Update applies an optimistic compare-and-set on the version column, so a
// concurrent writer that already bumped the version turns this writer's
// update into a VersionIsInvalidError instead of a silent overwrite. New
// ledger entries are inserted in the same transaction as the status row.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including items and the initial
// ledger entry, via GORM's association handling.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the mutable order columns and appends any ledger entries
// the aggregate accumulated since it was loaded.
//
// The WHERE clause matches the version the aggregate was loaded at and bumps
// it by one; zero affected rows means another writer committed first.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":      dto.Status,
			"agent_id":    dto.AgentID,
			"agent_name":  dto.AgentName,
			"agent_phone": dto.AgentPhone,
			"version":     dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order "+aggregate.ID().String(),
			gorm.ErrRecordNotFound)
	}

	if err := r.appendNewEvents(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// appendNewEvents inserts the ledger entries not yet present in the events
// table. Existing rows are never modified: the ledger is append-only.
func (r *GormOrderRepository) appendNewEvents(ctx context.Context, dto OrderDTO) error {
	var persisted int64
	err := r.db.WithContext(ctx).
		Model(&StatusEventDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&persisted).Error
	if err != nil {
		return err
	}

	if int(persisted) >= len(dto.Events) {
		return nil
	}

	delta := dto.Events[persisted:]
	return r.db.WithContext(ctx).Create(&delta).Error
}

// Get retrieves an order with its items and complete ledger by storage id.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "id = ?", id.Bytes(), id.String())
}

// GetByNumber retrieves an order by its human-readable order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	return r.getOne(ctx, "number = ?", number, number)
}

func (r *GormOrderRepository) getOne(ctx context.Context, where string, value any, lookup string) (*order.Order, error) {
	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, where, value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", lookup)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInPendingDeliveryStatus retrieves orders awaiting an agent, oldest first.
func (r *GormOrderRepository) GetAllInPendingDeliveryStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Where("status = ?", int(order.PendingDelivery)).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// CountActiveByAgent counts the orders currently occupying the agent.
func (r *GormOrderRepository) CountActiveByAgent(ctx context.Context, agentID kernel.UUID) (int, error) {
	if err := agentID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("agent_id = ? AND status IN ?", agentID.Bytes(), activeAssignmentStatuses).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// preloaded returns a query with items and ledger entries loaded in append order.
func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id")
		}).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_events.id")
		})
}
