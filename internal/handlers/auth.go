package handlers

import (
	"context"
	"log"

	"github.com/dimitrije/gatekeep-api/internal/identity"
	"github.com/dimitrije/gatekeep-api/internal/metrics"
	"github.com/dimitrije/gatekeep-api/internal/middleware"
	"github.com/dimitrije/gatekeep-api/internal/models"
	"github.com/dimitrije/gatekeep-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	identity  IdentityClientInterface
	profiles  ProfileServiceInterface
	jwt       JWTServiceInterface
	collector *metrics.Collector
}

func NewAuthHandler(
	identityClient IdentityClientInterface,
	profiles ProfileServiceInterface,
	jwt JWTServiceInterface,
	collector *metrics.Collector,
) *AuthHandler {
	return &AuthHandler{
		identity:  identityClient,
		profiles:  profiles,
		jwt:       jwt,
		collector: collector,
	}
}

// Register creates a provider account and a matching profile row. The role
// is always "user"; the request cannot choose it. The profile insert is
// best-effort: the provider account is the source of truth for existence,
// and an insert failure is logged but not surfaced to the caller.
func (h *AuthHandler) Register(c *drift.Context) {
	var req dto.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: err.Error()})
		return
	}

	user, err := h.identity.CreateUser(context.Background(), req.Email, req.Password)
	if err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: identity.ProviderMessage(err)})
		return
	}

	if _, err := h.profiles.Create(context.Background(), user.ID, req.Email, req.Username, models.RoleUser); err != nil {
		log.Printf("register: profile insert failed for %s: %v", user.ID, err)
	}

	h.collector.RecordRegistration()
	_ = c.JSON(200, dto.MessageResponse{Message: "User registered"})
}

// Login verifies credentials against the provider, then mints a session
// token from the stored profile (not the provider payload), so the token's
// role always reflects the profiles table.
func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		_ = c.JSON(400, dto.MessageResponse{Message: err.Error()})
		return
	}

	user, err := h.identity.SignInWithPassword(context.Background(), req.Email, req.Password)
	if err != nil {
		h.collector.RecordLogin(false)
		_ = c.JSON(401, dto.MessageResponse{Message: "Invalid credentials"})
		return
	}

	profile, err := h.profiles.GetByID(context.Background(), user.ID)
	if err != nil {
		_ = c.JSON(500, dto.MessageResponse{Message: "Profile not found"})
		return
	}

	token, err := h.jwt.GenerateToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		_ = c.JSON(500, dto.MessageResponse{Message: "Failed to issue token"})
		return
	}

	h.collector.RecordLogin(true)
	_ = c.JSON(200, dto.LoginResponse{
		Token: token,
		User:  dto.NewProfileResponse(profile),
	})
}

// Me returns the caller's own profile, looked up by the token's user id.
func (h *AuthHandler) Me(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.MessageResponse{Message: "Invalid token"})
		return
	}

	profile, err := h.profiles.GetByID(context.Background(), userID)
	if err != nil {
		_ = c.JSON(500, dto.MessageResponse{Message: "Profile not found"})
		return
	}

	_ = c.JSON(200, dto.MeResponse{User: dto.NewProfileResponse(profile)})
}
