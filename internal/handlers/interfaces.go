package handlers

import (
	"context"

	"github.com/dimitrije/gatekeep-api/internal/identity"
	"github.com/dimitrije/gatekeep-api/internal/models"
	"github.com/google/uuid"
)

// ProfileServiceInterface defines the methods used by handlers from ProfileService
type ProfileServiceInterface interface {
	Create(ctx context.Context, id uuid.UUID, email, username, role string) (*models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Update(ctx context.Context, id uuid.UUID, email, username, role *string) (*models.Profile, error)
}

// IdentityClientInterface defines the methods used by handlers from identity.Client
type IdentityClientInterface interface {
	CreateUser(ctx context.Context, email, password string) (*identity.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*identity.User, error)
	UpdateUserEmail(ctx context.Context, id uuid.UUID, email string) (*identity.User, error)
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateToken(userID uuid.UUID, email, role string) (string, error)
}
