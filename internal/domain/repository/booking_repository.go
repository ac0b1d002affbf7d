package repository

import (
	"errors"
	"time"

	"appointment-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSlotTaken is returned by Reserve when the partial unique index on
// (provider_id, datetime) rejects the insert: another confirmed booking
// already holds the slot. Callers must not retry automatically.
var ErrSlotTaken = errors.New("slot is already held by a confirmed booking")

// BookingRepository is the booking ledger: the single source of truth for
// whether a (provider, datetime) slot is held, and the only place that
// transitions unbooked -> booked. All availability reads filter on confirmed,
// non-deleted rows so cancelled bookings never block a slot.
type BookingRepository interface {
	// Reserve atomically check-and-inserts a confirmed booking. The insert
	// itself is the serialization point; a uniqueness violation comes back
	// as ErrSlotTaken, any other error is an infrastructure failure.
	Reserve(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID, limit, offset int) ([]entity.Booking, int64, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Booking, int64, error)
	FindConfirmedInRange(db *gorm.DB, providerID uint, from, to time.Time) ([]entity.Booking, error)
	IsSlotAvailable(db *gorm.DB, providerID uint, datetime time.Time) (bool, error)
	// CancelBooking flips status to cancelled only if not already cancelled;
	// the returned row count tells the two outcomes apart.
	CancelBooking(db *gorm.DB, id uuid.UUID) (int64, error)
	// HardDeleteBooking removes the row only while status is cancelled.
	HardDeleteBooking(db *gorm.DB, id uuid.UUID) (int64, error)
}
