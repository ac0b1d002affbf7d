package repository

import (
	"errors"

	"appointment-booking-api/internal/domain/entity"
	domainRepo "appointment-booking-api/internal/domain/repository"

	"gorm.io/gorm"
)

type providerRepository struct{}

func NewProviderRepository() domainRepo.ProviderRepository {
	return &providerRepository{}
}

func (r *providerRepository) Create(db *gorm.DB, provider *entity.Provider) error {
	provider.WorkingHours = provider.WorkingHours.Normalize()
	return db.Create(provider).Error
}

func (r *providerRepository) FindByID(db *gorm.DB, id uint) (*entity.Provider, error) {
	var provider entity.Provider
	err := db.Where("id = ?", id).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) FindAll(db *gorm.DB) ([]entity.Provider, error) {
	var providers []entity.Provider
	if err := db.Order("id ASC").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *providerRepository) Update(db *gorm.DB, provider *entity.Provider) error {
	provider.WorkingHours = provider.WorkingHours.Normalize()
	return db.Save(provider).Error
}
