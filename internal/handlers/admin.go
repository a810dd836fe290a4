package handlers

import (
	"context"
	"log"

	"github.com/dimitrije/gatekeep-api/internal/identity"
	"github.com/dimitrije/gatekeep-api/internal/middleware"
	"github.com/dimitrije/gatekeep-api/internal/models"
	"github.com/dimitrije/gatekeep-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type AdminHandler struct {
	identity IdentityClientInterface
	profiles ProfileServiceInterface
}

func NewAdminHandler(identityClient IdentityClientInterface, profiles ProfileServiceInterface) *AdminHandler {
	return &AdminHandler{
		identity: identityClient,
		profiles: profiles,
	}
}

// AllUsers returns every profile row, unfiltered and unpaginated.
func (h *AdminHandler) AllUsers(c *drift.Context) {
	if middleware.GetUserRole(c) != models.RoleAdmin {
		_ = c.JSON(403, dto.MessageResponse{Message: "Not allowed"})
		return
	}

	profiles, err := h.profiles.List(context.Background())
	if err != nil {
		_ = c.JSON(500, dto.MessageResponse{Message: "Failed to fetch users"})
		return
	}

	_ = c.JSON(200, profiles)
}

// CreateUser provisions a provider account plus profile with an
// admin-chosen role. Unlike self-registration, the insert failure is
// surfaced here, since the caller is expected to act on it.
func (h *AdminHandler) CreateUser(c *drift.Context) {
	if middleware.GetUserRole(c) != models.RoleAdmin {
		_ = c.JSON(403, dto.MessageResponse{Message: "Not allowed"})
		return
	}

	var req dto.CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: "invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" || req.Username == "" || req.Role == "" {
		_ = c.JSON(400, dto.MessageResponse{Message: "All fields required"})
		return
	}

	user, err := h.identity.CreateUser(context.Background(), req.Email, req.Password)
	if err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: identity.ProviderMessage(err)})
		return
	}

	if _, err := h.profiles.Create(context.Background(), user.ID, req.Email, req.Username, req.Role); err != nil {
		_ = c.JSON(500, dto.MessageResponse{Message: "Profile insert failed"})
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "User created successfully"})
}

// UpdateUser applies a partial profile update, then propagates an email
// change to the provider. The profile write is already committed when the
// provider call runs; a provider failure leaves the two stores diverged,
// which is surfaced to the caller and logged.
func (h *AdminHandler) UpdateUser(c *drift.Context) {
	if middleware.GetUserRole(c) != models.RoleAdmin {
		_ = c.JSON(403, dto.MessageResponse{Message: "Not allowed"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: "Invalid user id"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: "invalid request body"})
		return
	}

	if _, err := h.profiles.Update(context.Background(), id, req.Email, req.Username, req.Role); err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: err.Error()})
		return
	}

	if req.Email != nil && *req.Email != "" {
		if _, err := h.identity.UpdateUserEmail(context.Background(), id, *req.Email); err != nil {
			log.Printf("update-user: provider email update failed for %s after profile commit: %v", id, err)
			_ = c.JSON(400, dto.MessageResponse{Message: identity.ProviderMessage(err)})
			return
		}
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "User updated successfully"})
}
