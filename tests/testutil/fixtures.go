package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dimitrije/gatekeep-api/internal/database"
	"github.com/dimitrije/gatekeep-api/internal/models"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateProfile creates a test profile with default values
func (f *Fixtures) CreateProfile(t *testing.T, opts ...ProfileOption) *models.Profile {
	t.Helper()
	f.counter++

	profile := &models.Profile{
		ID:       uuid.New(),
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		Username: fmt.Sprintf("user%d", f.counter),
		Role:     models.RoleUser,
	}

	for _, opt := range opts {
		opt(profile)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (id, email, username, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, username, role, created_at, updated_at
	`, profile.ID, profile.Email, profile.Username, profile.Role).Scan(
		&profile.ID, &profile.Email, &profile.Username, &profile.Role,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	return profile
}

// ProfileOption configures a test profile
type ProfileOption func(*models.Profile)

// WithRole sets the profile role
func WithRole(role string) ProfileOption {
	return func(p *models.Profile) {
		p.Role = role
	}
}

// WithEmail sets the profile email
func WithEmail(email string) ProfileOption {
	return func(p *models.Profile) {
		p.Email = email
	}
}
