package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	ProviderID uint   `json:"provider_id" validate:"required,min=1"`
	ServiceID  uint   `json:"service_id" validate:"required,min=1"`
	Datetime   string `json:"datetime" validate:"required"`
}

// Response DTOs

// BookingResponse renders the datetime back in the same
// "YYYY-MM-DD HH:MM:SS" form the create request used.
type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	Provider  string    `json:"provider"`
	Service   string    `json:"service"`
	Datetime  string    `json:"datetime"`
	UserEmail string    `json:"user_email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
}

type AvailableSlotsResponse struct {
	ProviderID uint     `json:"provider_id"`
	ServiceID  uint     `json:"service_id"`
	Slots      []string `json:"slots"`
	Total      int      `json:"total"`
}
