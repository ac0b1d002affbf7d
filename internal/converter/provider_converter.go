package converter

import (
	"appointment-booking-api/internal/delivery/dto"
	"appointment-booking-api/internal/domain/entity"
)

// ProviderToResponse converts a Provider entity to ProviderResponse DTO
func ProviderToResponse(provider *entity.Provider) *dto.ProviderResponse {
	if provider == nil {
		return nil
	}

	return &dto.ProviderResponse{
		ID:           provider.ID,
		Name:         provider.Name,
		WorkingHours: map[string]string(provider.WorkingHours),
		CreatedAt:    provider.CreatedAt,
		UpdatedAt:    provider.UpdatedAt,
	}
}

// ProvidersToResponses converts a slice of Provider entities to ProviderResponse DTOs
func ProvidersToResponses(providers []entity.Provider) []dto.ProviderResponse {
	responses := make([]dto.ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = *ProviderToResponse(&providers[i])
	}
	return responses
}
