package usecase

import (
	"errors"
	"fmt"
)

// Fixed-message outcomes. The booking rejections keep the exact wording the
// API has always returned; handlers map them to status codes.
var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrBookingNotFound  = errors.New("booking not found")

	ErrInvalidDatetime       = errors.New("Invalid datetime format. Expected format: YYYY-MM-DD HH:MM:SS")
	ErrMalformedWorkingHours = errors.New("Invalid working hours format for provider")
	ErrServiceExceedsClosing = errors.New("Service duration extends beyond provider closing time")
	ErrSlotAlreadyBooked     = errors.New("Slot already booked")

	ErrBookingNotOwned = errors.New("booking does not belong to you")

	ErrEmailAlreadyExists = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrRoleNotFound       = errors.New("role not found")
	ErrUserNotFound       = errors.New("user not found")
)

// ClosedDayError rejects a booking on a weekday the provider has no
// configured interval for.
type ClosedDayError struct {
	Weekday string
}

func (e *ClosedDayError) Error() string {
	return "Provider does not work on " + e.Weekday
}

// OutsideWorkingHoursError rejects a start time outside the [open, close)
// window; the message carries the window so callers see what was valid.
type OutsideWorkingHoursError struct {
	Window string
}

func (e *OutsideWorkingHoursError) Error() string {
	return fmt.Sprintf("Booking time is outside provider working hours (%s)", e.Window)
}

// WorkingHoursValidationError carries per-weekday field errors from schedule
// validation at provider create/update time.
type WorkingHoursValidationError struct {
	Fields map[string]string
}

func (e *WorkingHoursValidationError) Error() string {
	return "invalid working hours"
}
