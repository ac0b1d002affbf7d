package usecase

import (
	"context"
	"errors"
	"time"

	"appointment-booking-api/internal/converter"
	"appointment-booking-api/internal/delivery/dto"
	"appointment-booking-api/internal/domain/entity"
	"appointment-booking-api/internal/domain/repository"
	"appointment-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorIsAdmin bool) error
	HardDeleteBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorIsAdmin bool) error
	GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.BookingListResponse, error)
	GetAllBookings(ctx context.Context, page, limit int) (*dto.BookingListResponse, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	providerRepo repository.ProviderRepository
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	providerRepo repository.ProviderRepository,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

// CreateBooking validates the request against the provider's working hours
// and reserves the slot.
//
// Two requests may both pass the availability pre-check on a stale read and
// both attempt to reserve; the ledger's unique index then picks exactly one
// winner. The loser gets the same SlotAlreadyBooked outcome as an upfront
// miss; only the log line differs.
func (u *bookingUsecase) CreateBooking(ctx context.Context, userID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	db := u.db.WithContext(ctx)

	provider, err := u.providerRepo.FindByID(db, req.ProviderID)
	if err != nil {
		u.log.Warnf("Failed to find provider %d: %+v", req.ProviderID, err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	svc, err := u.serviceRepo.FindByID(db, req.ServiceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", req.ServiceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	datetime, err := parseDatetime(req.Datetime)
	if err != nil {
		return nil, ErrInvalidDatetime
	}

	if err := validateBookingTime(provider, svc, datetime); err != nil {
		return nil, err
	}

	available, err := u.bookingRepo.IsSlotAvailable(db, provider.ID, datetime)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if !available {
		u.log.Infof("Slot %s already booked for provider %d at validation time", req.Datetime, provider.ID)
		return nil, ErrSlotAlreadyBooked
	}

	booking := &entity.Booking{
		UserID:     userID,
		ProviderID: provider.ID,
		ServiceID:  svc.ID,
		Datetime:   datetime,
	}

	if err := u.bookingRepo.Reserve(db, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			// Lost the race between the availability check and the insert.
			u.log.Warnf("Reservation race detected for provider %d at %s", provider.ID, req.Datetime)
			return nil, ErrSlotAlreadyBooked
		}
		u.log.Warnf("Failed to reserve booking: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, db, &userID, entity.AuditActionBookingCreate, "booking", booking.ID.String(), map[string]interface{}{
		"provider_id": provider.ID,
		"service_id":  svc.ID,
		"datetime":    booking.Datetime.Format(entity.DatetimeLayout),
	})

	booking.Provider = *provider
	booking.Service = *svc
	return converter.BookingToResponse(booking), nil
}

// CancelBooking soft-deletes: the row stays, the slot frees up. Permitted for
// the owning user or an admin, and only from the confirmed state: repeating
// a cancel is a rejected transition, not a no-op.
func (u *bookingUsecase) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorIsAdmin bool) error {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if !actorIsAdmin && !booking.OwnedBy(actorID) {
		return ErrBookingNotOwned
	}

	if err := booking.CanCancel(); err != nil {
		return err
	}

	rows, err := u.bookingRepo.CancelBooking(db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to cancel booking %s: %+v", bookingID, err)
		return err
	}
	if rows == 0 {
		// A concurrent cancel got there first.
		return entity.ErrBookingAlreadyCancelled
	}

	u.auditService.LogUpdate(ctx, db, &actorID, entity.AuditActionBookingCancel, "booking", bookingID.String(),
		map[string]interface{}{"status": string(entity.BookingStatusConfirmed)},
		map[string]interface{}{"status": string(entity.BookingStatusCancelled)})

	return nil
}

// HardDeleteBooking permanently removes a booking. Only a cancelled booking
// may be purged; confirmed bookings must be cancelled first.
func (u *bookingUsecase) HardDeleteBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorIsAdmin bool) error {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if !actorIsAdmin && !booking.OwnedBy(actorID) {
		return ErrBookingNotOwned
	}

	if err := booking.CanHardDelete(); err != nil {
		return err
	}

	rows, err := u.bookingRepo.HardDeleteBooking(db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to hard delete booking %s: %+v", bookingID, err)
		return err
	}
	if rows == 0 {
		return entity.ErrOnlyCancelledCanBeDeleted
	}

	u.auditService.LogDelete(ctx, db, &actorID, entity.AuditActionBookingPurge, "booking", bookingID.String(),
		map[string]interface{}{"status": string(entity.BookingStatusCancelled)})

	return nil
}

func (u *bookingUsecase) GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.BookingListResponse, error) {
	limit, offset := normalizePage(page, limit, 20)

	bookings, total, err := u.bookingRepo.FindByUserID(u.db.WithContext(ctx), userID, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find bookings for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    total,
	}, nil
}

func (u *bookingUsecase) GetAllBookings(ctx context.Context, page, limit int) (*dto.BookingListResponse, error) {
	limit, offset := normalizePage(page, limit, 50)

	bookings, total, err := u.bookingRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find all bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    total,
	}, nil
}

// validateBookingTime runs the pre-creation gate in order, stopping at the
// first failure: configured day, well-formed interval, start within
// [open, close), and the whole service fitting before close.
func validateBookingTime(provider *entity.Provider, svc *entity.Service, datetime time.Time) error {
	weekday := datetime.Weekday()

	if !provider.WorkingHours.IsOpenOn(weekday) {
		return &ClosedDayError{Weekday: entity.WeekdayName(weekday)}
	}

	interval, ok := provider.WorkingHours.IntervalFor(weekday)
	if !ok {
		return ErrMalformedWorkingHours
	}

	open := interval.OpenOn(datetime)
	close := interval.CloseOn(datetime)

	if datetime.Before(open) || !datetime.Before(close) {
		return &OutsideWorkingHoursError{Window: interval.String()}
	}

	if datetime.Add(svc.DurationMinutes()).After(close) {
		return ErrServiceExceedsClosing
	}

	return nil
}

// parseDatetime accepts "YYYY-MM-DD HH:MM:SS" and the second-less variant,
// truncated to whole seconds, the granularity the uniqueness key compares at.
func parseDatetime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(entity.DatetimeLayout, s, time.Local)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02 15:04", s, time.Local)
		if err != nil {
			return time.Time{}, err
		}
	}
	return t.Truncate(time.Second), nil
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
