package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
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

// Add saves a new order to the database.
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

// Update saves an existing order to the database.
// The explicit column list makes GORM write zero-value fields.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("courier_id", "zone", "status", "eligible_since").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ClaimForCourier atomically assigns the order to the courier.
//
// The claim is a single conditional UPDATE that succeeds only while the order
// is Packed with no courier. The database serializes concurrent claims on the
// row; exactly one caller observes RowsAffected == 1 and every other caller
// falls through to the classification read below.
func (r *GormOrderRepository) ClaimForCourier(ctx context.Context, orderID, courierID kernel.UUID) (*order.Order, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND courier_id IS NULL", orderID.Bytes(), order.Packed).
		Updates(map[string]any{
			"courier_id": courierID.Bytes(),
			"status":     int(order.OutForDelivery),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, r.classifyLostClaim(ctx, orderID)
	}

	claimed, err := r.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(claimed.ID(), claimed)
	return claimed, nil
}

// classifyLostClaim re-reads the order to explain a zero-row claim.
func (r *GormOrderRepository) classifyLostClaim(ctx context.Context, orderID kernel.UUID) error {
	current, err := r.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if current.Courier() != nil {
		return ports.ErrOrderAlreadyAssigned
	}

	return ports.ErrOrderNotEligible
}

// GetAllEligible retrieves claimable orders, oldest first.
func (r *GormOrderRepository) GetAllEligible(ctx context.Context, zone *kernel.Zone) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND courier_id IS NULL", order.Packed).
		Order("eligible_since")
	if zone != nil {
		if err := zone.Validate(); err != nil {
			return nil, err
		}
		query = query.Where("zone = ?", zone.String())
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
