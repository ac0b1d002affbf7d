package converter

import (
	"appointment-booking-api/internal/delivery/dto"
	"appointment-booking-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The role name
// comes from the preloaded Role when present, otherwise from the role id.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	roleName := user.Role.RoleName
	if roleName == "" {
		if user.IsAdmin() {
			roleName = entity.RoleAdmin
		} else {
			roleName = entity.RoleUser
		}
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      roleName,
		CreatedAt: user.CreatedAt,
	}
}
