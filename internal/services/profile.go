package services

import (
	"context"
	"fmt"

	"github.com/dimitrije/gatekeep-api/internal/database"
	"github.com/dimitrije/gatekeep-api/internal/models"
	"github.com/google/uuid"
)

type ProfileService struct {
	db *database.DB
}

func NewProfileService(db *database.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Create inserts a profile row keyed by the provider-assigned id. Creation is
// not transactional with the provider account; callers decide whether an
// insert failure is surfaced or only logged.
func (s *ProfileService) Create(ctx context.Context, id uuid.UUID, email, username, role string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (id, email, username, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, username, role, created_at, updated_at
	`, id, email, username, role).Scan(
		&profile.ID, &profile.Email, &profile.Username, &profile.Role,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, username, role, created_at, updated_at
		FROM profiles WHERE id = $1
	`, id).Scan(
		&profile.ID, &profile.Email, &profile.Username, &profile.Role,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, email, username, role, created_at, updated_at
		FROM profiles ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var profile models.Profile
		if err := rows.Scan(
			&profile.ID, &profile.Email, &profile.Username, &profile.Role,
			&profile.CreatedAt, &profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

// Update applies a partial update: nil fields keep the stored column value.
func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, email, username, role *string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE profiles
		SET email = COALESCE($1, email),
		    username = COALESCE($2, username),
		    role = COALESCE($3, role),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id, email, username, role, created_at, updated_at
	`, email, username, role, id).Scan(
		&profile.ID, &profile.Email, &profile.Username, &profile.Role,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
