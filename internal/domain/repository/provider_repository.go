package repository

import (
	"appointment-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ProviderRepository interface {
	Create(db *gorm.DB, provider *entity.Provider) error
	FindByID(db *gorm.DB, id uint) (*entity.Provider, error)
	FindAll(db *gorm.DB) ([]entity.Provider, error)
	Update(db *gorm.DB, provider *entity.Provider) error
}
