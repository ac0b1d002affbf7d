package usecase

import (
	"context"

	"appointment-booking-api/internal/converter"
	"appointment-booking-api/internal/delivery/dto"
	"appointment-booking-api/internal/domain/entity"
	"appointment-booking-api/internal/domain/repository"
	"appointment-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProviderUsecase interface {
	CreateProvider(ctx context.Context, actorID uuid.UUID, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error)
	UpdateProvider(ctx context.Context, actorID uuid.UUID, providerID uint, req *dto.UpdateProviderRequest) (*dto.ProviderResponse, error)
	GetProvider(ctx context.Context, providerID uint) (*dto.ProviderResponse, error)
	GetAllProviders(ctx context.Context) (*dto.ProviderListResponse, error)
}

type providerUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	providerRepo repository.ProviderRepository
	auditService service.AuditService
}

func NewProviderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	providerRepo repository.ProviderRepository,
	auditService service.AuditService,
) ProviderUsecase {
	return &providerUsecase{
		db:           db,
		log:          log,
		providerRepo: providerRepo,
		auditService: auditService,
	}
}

func (u *providerUsecase) CreateProvider(ctx context.Context, actorID uuid.UUID, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	db := u.db.WithContext(ctx)

	schedule := entity.WeeklySchedule(req.WorkingHours)
	if fields := schedule.Validate(); len(fields) > 0 {
		return nil, &WorkingHoursValidationError{Fields: fields}
	}

	provider := &entity.Provider{
		Name:         req.Name,
		WorkingHours: schedule,
	}

	if err := u.providerRepo.Create(db, provider); err != nil {
		u.log.Warnf("Failed to create provider: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, db, &actorID, entity.AuditActionProviderCreate, "provider", provider.Name, map[string]interface{}{
		"name":          provider.Name,
		"working_hours": map[string]string(provider.WorkingHours),
	})

	return converter.ProviderToResponse(provider), nil
}

func (u *providerUsecase) UpdateProvider(ctx context.Context, actorID uuid.UUID, providerID uint, req *dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	db := u.db.WithContext(ctx)

	provider, err := u.providerRepo.FindByID(db, providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider %d: %+v", providerID, err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	schedule := entity.WeeklySchedule(req.WorkingHours)
	if fields := schedule.Validate(); len(fields) > 0 {
		return nil, &WorkingHoursValidationError{Fields: fields}
	}

	oldValue := map[string]interface{}{
		"name":          provider.Name,
		"working_hours": map[string]string(provider.WorkingHours),
	}

	provider.Name = req.Name
	provider.WorkingHours = schedule

	if err := u.providerRepo.Update(db, provider); err != nil {
		u.log.Warnf("Failed to update provider %d: %+v", providerID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, db, &actorID, entity.AuditActionProviderUpdate, "provider", provider.Name, oldValue, map[string]interface{}{
		"name":          provider.Name,
		"working_hours": map[string]string(provider.WorkingHours),
	})

	return converter.ProviderToResponse(provider), nil
}

func (u *providerUsecase) GetProvider(ctx context.Context, providerID uint) (*dto.ProviderResponse, error) {
	provider, err := u.providerRepo.FindByID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider %d: %+v", providerID, err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	return converter.ProviderToResponse(provider), nil
}

func (u *providerUsecase) GetAllProviders(ctx context.Context) (*dto.ProviderListResponse, error) {
	providers, err := u.providerRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find providers: %+v", err)
		return nil, err
	}

	return &dto.ProviderListResponse{
		Providers: converter.ProvidersToResponses(providers),
		Total:     len(providers),
	}, nil
}
