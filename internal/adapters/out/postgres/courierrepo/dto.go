// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// The is_online index serves the broadcast fan-out and the stale-courier sweep,
// both of which scan online couriers only.
type CourierDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Zone       string    `gorm:"type:varchar(64);index"`
	IsOnline   bool      `gorm:"index"`
	LastSeenAt time.Time
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers" instead of "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(courier *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:         courier.ID().Bytes(),
		Name:       courier.Name(),
		Zone:       courier.Zone().String(),
		IsOnline:   courier.IsOnline(),
		LastSeenAt: courier.LastSeenAt(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
// Reconstructs the aggregate including availability state using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	zone, err := kernel.NewZone(dto.Zone)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, zone, dto.IsOnline, dto.LastSeenAt)
}
