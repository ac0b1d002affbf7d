package repository

import (
	"appointment-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id uint) (*entity.Service, error)
	FindAll(db *gorm.DB) ([]entity.Service, error)
}
