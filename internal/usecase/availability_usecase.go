package usecase

import (
	"context"
	"time"

	"appointment-booking-api/internal/domain/entity"
	"appointment-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// SlotStepMinutes is the fixed candidate-generation step. It is
	// deliberately independent of service duration: start times always align
	// to 30-minute marks from the day's opening time, so two services of
	// different lengths still compete for the same keys.
	SlotStepMinutes = 30

	// DefaultDaysAhead is the booking horizon when the caller does not ask
	// for one: today through +30 days, half-open.
	DefaultDaysAhead = 30
)

type AvailabilityUsecase interface {
	// GenerateAvailableSlots returns every bookable start time for the
	// provider and service, ordered chronologically, as
	// "YYYY-MM-DD HH:MM:SS" strings. The result is recomputed from scratch
	// on every call: bookings change between calls, so caching would serve
	// stale slots.
	GenerateAvailableSlots(ctx context.Context, providerID, serviceID uint, daysAhead int) ([]string, error)
}

type availabilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	providerRepo repository.ProviderRepository
	serviceRepo  repository.ServiceRepository
	bookingRepo  repository.BookingRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	providerRepo repository.ProviderRepository,
	serviceRepo repository.ServiceRepository,
	bookingRepo repository.BookingRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:           db,
		log:          log,
		providerRepo: providerRepo,
		serviceRepo:  serviceRepo,
		bookingRepo:  bookingRepo,
	}
}

func (u *availabilityUsecase) GenerateAvailableSlots(ctx context.Context, providerID, serviceID uint, daysAhead int) ([]string, error) {
	db := u.db.WithContext(ctx)

	provider, err := u.providerRepo.FindByID(db, providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider %d: %+v", providerID, err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	service, err := u.serviceRepo.FindByID(db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", serviceID, err)
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, daysAhead)

	existing, err := u.bookingRepo.FindConfirmedInRange(db, providerID, from, to)
	if err != nil {
		u.log.Warnf("Failed to load bookings for provider %d: %+v", providerID, err)
		return nil, err
	}

	booked := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		booked[b.Datetime.Format(entity.DatetimeLayout)] = struct{}{}
	}

	slots := []string{}
	for d := 0; d < daysAhead; d++ {
		day := from.AddDate(0, 0, d)
		slots = append(slots, slotsForDay(provider.WorkingHours, service.Duration, day, booked)...)
	}

	return slots, nil
}

// slotsForDay enumerates candidate start times for one calendar day: every
// SlotStepMinutes mark from open, kept when the whole service still fits
// before close (ending exactly at close is fine) and the exact key is not
// held by a confirmed booking. A closed or malformed day contributes nothing.
func slotsForDay(schedule entity.WeeklySchedule, durationMin int, day time.Time, booked map[string]struct{}) []string {
	interval, ok := schedule.IntervalFor(day.Weekday())
	if !ok {
		return nil
	}

	open := interval.OpenOn(day)
	close := interval.CloseOn(day)
	duration := time.Duration(durationMin) * time.Minute
	step := SlotStepMinutes * time.Minute

	var slots []string
	for t := open; t.Before(close); t = t.Add(step) {
		if t.Add(duration).After(close) {
			continue
		}
		key := t.Format(entity.DatetimeLayout)
		if _, taken := booked[key]; taken {
			continue
		}
		slots = append(slots, key)
	}
	return slots
}
