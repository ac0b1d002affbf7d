package repository

import (
	"errors"
	"time"

	"appointment-booking-api/internal/domain/entity"
	domainRepo "appointment-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

// Reserve inserts a confirmed booking. The partial unique index
// uniq_booking_provider_datetime_confirmed is the serialization point: when
// two requests race for the same slot, exactly one insert commits and the
// other comes back here as a uniqueness violation, which we surface as
// ErrSlotTaken. No in-process locking; this holds across server instances.
func (r *bookingRepository) Reserve(db *gorm.DB, booking *entity.Booking) error {
	booking.Status = entity.BookingStatusConfirmed
	booking.Datetime = booking.Datetime.Truncate(time.Second)

	if err := db.Create(booking).Error; err != nil {
		if isUniqueViolation(err) {
			return domainRepo.ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Provider").Preload("Service").Preload("User").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUserID(db *gorm.DB, userID uuid.UUID, limit, offset int) ([]entity.Booking, int64, error) {
	var (
		bookings []entity.Booking
		total    int64
	)

	q := db.Model(&entity.Booking{}).
		Where("user_id = ? AND deleted_at IS NULL", userID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	err := q.Preload("Provider").Preload("Service").Preload("User").
		Order("datetime ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Booking, int64, error) {
	var (
		bookings []entity.Booking
		total    int64
	)

	q := db.Model(&entity.Booking{}).Where("deleted_at IS NULL")

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	err := q.Preload("Provider").Preload("Service").Preload("User").
		Order("datetime DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) FindConfirmedInRange(db *gorm.DB, providerID uint, from, to time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.
		Where("provider_id = ? AND datetime >= ? AND datetime < ?", providerID, from, to).
		Where("status = ? AND deleted_at IS NULL", entity.BookingStatusConfirmed).
		Order("datetime ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) IsSlotAvailable(db *gorm.DB, providerID uint, datetime time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.Booking{}).
		Where("provider_id = ? AND datetime = ?", providerID, datetime.Truncate(time.Second)).
		Where("status = ? AND deleted_at IS NULL", entity.BookingStatusConfirmed).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CancelBooking atomically cancels a booking ONLY if it's not already
// cancelled. Rows affected: 1 = success, 0 = already cancelled (prevents
// double-cancel races). Cancelling frees the slot because every availability
// read filters on status = confirmed.
func (r *bookingRepository) CancelBooking(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status != ? AND deleted_at IS NULL", id, entity.BookingStatusCancelled).
		Update("status", entity.BookingStatusCancelled)
	return result.RowsAffected, result.Error
}

// HardDeleteBooking permanently removes the row, but only from the cancelled
// state. The status condition lives in the statement so a concurrent cancel
// or re-confirm cannot slip between a read and the delete.
func (r *bookingRepository) HardDeleteBooking(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.
		Where("id = ? AND status = ?", id, entity.BookingStatusCancelled).
		Delete(&entity.Booking{})
	return result.RowsAffected, result.Error
}

// isUniqueViolation checks for a unique constraint violation from either
// GORM's translated error (postgres and sqlite drivers with TranslateError)
// or a raw PostgreSQL 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
