package converter

import (
	"appointment-booking-api/internal/delivery/dto"
	"appointment-booking-api/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO. It
// expects Provider and Service (and User, when present) to be preloaded.
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:        booking.ID,
		Provider:  booking.Provider.Name,
		Service:   booking.Service.Name,
		Datetime:  booking.Datetime.Format(entity.DatetimeLayout),
		UserEmail: booking.User.Email,
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
	}
}

// BookingsToResponses converts a slice of Booking entities to BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}
