package integration

import (
	"context"
	"testing"

	"github.com/dimitrije/gatekeep-api/internal/models"
	"github.com/dimitrije/gatekeep-api/internal/services"
	"github.com/dimitrije/gatekeep-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Integration_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB)
	ctx := context.Background()

	id := uuid.New()
	created, err := svc.Create(ctx, id, "it@example.com", "ituser", models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "it@example.com", fetched.Email)

	username := "renamed"
	updated, err := svc.Update(ctx, id, nil, &username, nil)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "it@example.com", updated.Email)
	assert.Equal(t, models.RoleUser, updated.Role)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "renamed", all[0].Username)
}

func TestProfileService_Integration_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProfileService(tdb.DB)
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), "dup@example.com", "first", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.Create(ctx, uuid.New(), "dup@example.com", "second", models.RoleUser)
	assert.Error(t, err)
}

func TestProfileService_Integration_ListOrderAndFixtures(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewProfileService(tdb.DB)
	ctx := context.Background()

	fixtures.CreateProfile(t)
	admin := fixtures.CreateProfile(t, testutil.WithRole(models.RoleAdmin))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	var found bool
	for _, p := range all {
		if p.ID == admin.ID {
			found = true
			assert.Equal(t, models.RoleAdmin, p.Role)
		}
	}
	assert.True(t, found)

	tdb.CleanTables(t)
	all, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
