package dto

import "time"

// Request DTOs

type CreateServiceRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Duration int    `json:"duration" validate:"required,gte=1,lte=480"`
}

// Response DTOs

type ServiceResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
