package dto

import (
	"github.com/dimitrije/gatekeep-api/internal/models"
	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

func NewProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:       p.ID,
		Email:    p.Email,
		Username: p.Username,
		Role:     p.Role,
	}
}

type MeResponse struct {
	User ProfileResponse `json:"user"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UpdateUserRequest fields are all optional; nil means leave the column
// untouched. A supplied email additionally changes the provider login email.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Role     *string `json:"role"`
}
