package orderrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM. Event ledger
// rows, discounts and status changes are append-only: persisting the
// aggregate again inserts new child rows and leaves existing ones untouched.
// Notes are the exception, they may be rewritten within their editable
// window.
type GormOrderRepository struct {
	db        *gorm.DB
	tracker   aggregateTracker
	pipelines order.Pipelines
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. The pipelines
// are needed to rehydrate aggregates, they are configuration rather than
// persisted state.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker, pipelines order.Pipelines) *GormOrderRepository {
	return &GormOrderRepository{
		db:        db,
		tracker:   tracker,
		pipelines: pipelines,
	}
}

// Add saves a new order aggregate with all its child rows.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rows := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&rows.order).Error; err != nil {
		return err
	}
	if err := r.saveChildren(ctx, rows); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order aggregate. The order row is rewritten for
// the status; child rows are upserted so the append-only ledgers never
// duplicate.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rows := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", rows.order.ID).Updates(&rows.order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.saveChildren(ctx, rows); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order aggregate by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(ctx, r.db.WithContext(ctx), "id = ?", id.Bytes(), id.String())
}

// GetByNumber retrieves an order aggregate by its business order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	return r.load(ctx, r.db.WithContext(ctx), "number = ?", number, number)
}

// GetByNumberForUpdate retrieves an order by number holding a FOR UPDATE row
// lock until the surrounding transaction ends. Ledger-validating commands
// load through this method so two concurrent events cannot both pass
// validation against the same remaining quantity.
func (r *GormOrderRepository) GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.load(ctx, locked, "number = ?", number, number)
}

func (r *GormOrderRepository) load(
	ctx context.Context, db *gorm.DB, condition string, value any, lookup string,
) (*order.Order, error) {
	var rows orderRows
	if err := db.First(&rows.order, condition, value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", lookup)
		}
		return nil, err
	}

	if err := r.loadChildren(ctx, &rows); err != nil {
		return nil, err
	}
	return toDomain(rows, r.pipelines)
}

func (r *GormOrderRepository) loadChildren(ctx context.Context, rows *orderRows) error {
	db := r.db.WithContext(ctx)
	orderID := rows.order.ID

	if err := db.Order("created_seq").Find(&rows.lines, "order_id = ?", orderID).Error; err != nil {
		return err
	}

	lineIDs := make([]any, 0, len(rows.lines))
	for _, line := range rows.lines {
		lineIDs = append(lineIDs, line.ID)
	}
	if len(lineIDs) > 0 {
		if err := db.Order("seq").Find(&rows.linePrices, "line_id IN ?", lineIDs).Error; err != nil {
			return err
		}
		if err := db.Order("seq").Find(&rows.lineAttributes, "line_id IN ?", lineIDs).Error; err != nil {
			return err
		}
	}

	if err := db.Order("seq").Find(&rows.shippingEvents, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	if len(rows.shippingEvents) > 0 {
		eventIDs := make([]any, 0, len(rows.shippingEvents))
		for _, event := range rows.shippingEvents {
			eventIDs = append(eventIDs, event.ID)
		}
		if err := db.Find(&rows.shippingQuantities, "event_id IN ?", eventIDs).Error; err != nil {
			return err
		}
	}

	if err := db.Order("seq").Find(&rows.paymentEvents, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	if len(rows.paymentEvents) > 0 {
		eventIDs := make([]any, 0, len(rows.paymentEvents))
		for _, event := range rows.paymentEvents {
			eventIDs = append(eventIDs, event.ID)
		}
		if err := db.Find(&rows.paymentQuantities, "event_id IN ?", eventIDs).Error; err != nil {
			return err
		}
	}

	if err := db.Find(&rows.discounts, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	if err := db.Order("date_created").Find(&rows.notes, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	if err := db.Order("seq").Find(&rows.statusChanges, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	return db.Order("date_created").Find(&rows.communicationEvents, "order_id = ?", orderID).Error
}

// saveChildren writes the child rows of the aggregate. Conflict targets make
// the writes idempotent: the aggregate always carries its full history, only
// rows that do not exist yet are inserted.
func (r *GormOrderRepository) saveChildren(ctx context.Context, rows orderRows) error {
	db := r.db.WithContext(ctx)

	if len(rows.lines) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).Create(&rows.lines).Error
		if err != nil {
			return err
		}
	}
	if len(rows.linePrices) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows.linePrices).Error; err != nil {
			return err
		}
	}
	if len(rows.lineAttributes) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows.lineAttributes).Error; err != nil {
			return err
		}
	}
	if len(rows.shippingEvents) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows.shippingEvents).Error; err != nil {
			return err
		}
	}
	if len(rows.shippingQuantities) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows.shippingQuantities).Error; err != nil {
			return err
		}
	}
	if len(rows.paymentEvents) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows.paymentEvents).Error; err != nil {
			return err
		}
	}
	if len(rows.paymentQuantities) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows.paymentQuantities).Error; err != nil {
			return err
		}
	}
	if len(rows.discounts) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"offer_id", "offer_name", "voucher_id", "voucher_code"}),
		}).Create(&rows.discounts).Error
		if err != nil {
			return err
		}
	}
	if len(rows.notes) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"message", "date_updated"}),
		}).Create(&rows.notes).Error
		if err != nil {
			return err
		}
	}
	if len(rows.statusChanges) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "seq"}},
			DoNothing: true,
		}).Create(&rows.statusChanges).Error
		if err != nil {
			return err
		}
	}
	if len(rows.communicationEvents) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows.communicationEvents).Error; err != nil {
			return err
		}
	}
	return nil
}
