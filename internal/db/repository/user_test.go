package repository

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicdesk/internal/db"
	"clinicdesk/internal/domain"
)

func TestUserRepo_UpsertAndGet(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.User{
		Username:     "admin",
		PasswordHash: "hash-1",
		Role:         domain.RoleAdmin,
	}))

	got, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, "hash-1", got.PasswordHash)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	byID, err := repo.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, got, byID)
}

func TestUserRepo_GetByUsernameCaseInsensitive(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.User{
		Username: "Admin", PasswordHash: "h", Role: domain.RoleAdmin,
	}))

	got, err := repo.GetByUsername(ctx, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
}

func TestUserRepo_UpsertPreservesPassword(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.User{
		Username: "doctor", PasswordHash: "original", Role: domain.RoleDoctor,
	}))

	// Re-seeding must refresh the role but never reset the password.
	require.NoError(t, repo.Upsert(ctx, &domain.User{
		Username: "doctor", PasswordHash: "replacement", Role: domain.RoleAdmin,
	}))

	got, err := repo.GetByUsername(ctx, "doctor")
	require.NoError(t, err)
	assert.Equal(t, "original", got.PasswordHash)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestUserRepo_GetMissing(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)

	_, err := repo.GetByUsername(context.Background(), "nobody")

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
