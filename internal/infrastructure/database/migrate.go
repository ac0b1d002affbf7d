package database

import (
	"fmt"

	"appointment-booking-api/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates the schema, including the partial unique index on
// (provider_id, datetime) for confirmed bookings that serializes slot
// reservations, then seeds the fixed role rows.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Provider{},
		&entity.Service{},
		&entity.Booking{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "Full access, including provider and service management"},
		{ID: entity.RoleIDUser, RoleName: entity.RoleUser, Description: "Can browse availability and manage own bookings"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	return nil
}
