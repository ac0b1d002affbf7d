package dto

import "time"

// Request DTOs

// CreateProviderRequest carries the provider's weekly schedule as a map of
// lowercase weekday names to "HH:MM-HH:MM" intervals. Days left out are
// closed days.
type CreateProviderRequest struct {
	Name         string            `json:"name" validate:"required,min=2,max=255"`
	WorkingHours map[string]string `json:"working_hours" validate:"required"`
}

type UpdateProviderRequest struct {
	Name         string            `json:"name" validate:"required,min=2,max=255"`
	WorkingHours map[string]string `json:"working_hours" validate:"required"`
}

// Response DTOs

type ProviderResponse struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	WorkingHours map[string]string `json:"working_hours"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type ProviderListResponse struct {
	Providers []ProviderResponse `json:"providers"`
	Total     int                `json:"total"`
}
