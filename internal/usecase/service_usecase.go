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

type ServiceUsecase interface {
	CreateService(ctx context.Context, actorID uuid.UUID, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetService(ctx context.Context, serviceID uint) (*dto.ServiceResponse, error)
	GetAllServices(ctx context.Context) (*dto.ServiceListResponse, error)
}

type serviceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) ServiceUsecase {
	return &serviceUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceUsecase) CreateService(ctx context.Context, actorID uuid.UUID, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	db := u.db.WithContext(ctx)

	svc := &entity.Service{
		Name:     req.Name,
		Duration: req.Duration,
	}

	if err := u.serviceRepo.Create(db, svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, db, &actorID, entity.AuditActionServiceCreate, "service", svc.Name, map[string]interface{}{
		"name":     svc.Name,
		"duration": svc.Duration,
	})

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) GetService(ctx context.Context, serviceID uint) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) GetAllServices(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}
