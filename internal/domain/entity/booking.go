package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// DatetimeLayout is the wire and storage format for booking start times.
// Values are stored at whole-second granularity; exact equality on
// (provider_id, datetime) is the uniqueness key.
const DatetimeLayout = "2006-01-02 15:04:05"

var (
	ErrBookingAlreadyCancelled   = errors.New("Booking is already cancelled")
	ErrOnlyCancelledCanBeDeleted = errors.New("Only cancelled bookings can be deleted")
)

// Booking occupies an exact (provider, datetime) slot while confirmed. The
// partial unique index below is the only concurrency guard: two racing
// inserts for the same slot resolve at the database, never in process.
// DeletedAt is a plain nullable marker (no gorm.DeletedAt auto-scoping);
// rows only ever leave through the cancelled -> hard-delete path.
type Booking struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	ProviderID uint          `gorm:"not null;index;uniqueIndex:uniq_booking_provider_datetime_confirmed,where:status = 'confirmed'" json:"provider_id"`
	ServiceID  uint          `gorm:"not null;index" json:"service_id"`
	Datetime   time.Time     `gorm:"not null;uniqueIndex:uniq_booking_provider_datetime_confirmed,where:status = 'confirmed'" json:"datetime"`
	Status     BookingStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  *time.Time    `gorm:"index" json:"-"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Provider Provider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Service  Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate assigns the id in-process instead of relying on a
// postgres-only column default.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsConfirmed checks if the booking currently holds its slot
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsCancelled checks if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// CanCancel gates the confirmed -> cancelled transition.
func (b *Booking) CanCancel() error {
	if b.IsCancelled() {
		return ErrBookingAlreadyCancelled
	}
	return nil
}

// CanHardDelete gates permanent removal: only cancelled bookings may go,
// never directly from confirmed.
func (b *Booking) CanHardDelete() error {
	if !b.IsCancelled() {
		return ErrOnlyCancelledCanBeDeleted
	}
	return nil
}

// OwnedBy reports whether the booking belongs to the given user.
func (b *Booking) OwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}
