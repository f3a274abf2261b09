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

func seedAudit(t *testing.T, repo *AuditRepo, events ...domain.AuditEvent) {
	t.Helper()
	for i := range events {
		require.NoError(t, repo.Insert(context.Background(), &events[i]))
	}
}

func TestAuditRepo_InsertAndList(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewAuditRepo(writeDB)

	seedAudit(t, repo,
		domain.AuditEvent{ActorID: 1, ActorRole: domain.RoleAdmin, Action: domain.ActionLogin, Details: "successful login"},
		domain.AuditEvent{ActorID: 2, ActorRole: domain.RoleDoctor, Action: domain.ActionUnauthorizedAccess, Details: "operation=view_raw_records"},
	)

	events, err := repo.List(context.Background(), domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, domain.ActionUnauthorizedAccess, events[0].Action)
	assert.Equal(t, domain.ActionLogin, events[1].Action)
	assert.False(t, events[0].CreatedAt.IsZero())
}

func TestAuditRepo_ListFilters(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewAuditRepo(writeDB)
	ctx := context.Background()

	seedAudit(t, repo,
		domain.AuditEvent{ActorID: 1, ActorRole: domain.RoleAdmin, Action: domain.ActionLogin},
		domain.AuditEvent{ActorID: 2, ActorRole: domain.RoleDoctor, Action: domain.ActionLogin},
		domain.AuditEvent{ActorID: 2, ActorRole: domain.RoleDoctor, Action: domain.ActionLogout},
	)

	role := domain.RoleDoctor
	byRole, err := repo.List(ctx, domain.AuditFilter{Role: &role})
	require.NoError(t, err)
	assert.Len(t, byRole, 2)

	actor := int64(1)
	byActor, err := repo.List(ctx, domain.AuditFilter{ActorID: &actor})
	require.NoError(t, err)
	require.Len(t, byActor, 1)
	assert.Equal(t, int64(1), byActor[0].ActorID)

	both, err := repo.List(ctx, domain.AuditFilter{Role: &role, ActorID: &actor})
	require.NoError(t, err)
	assert.Empty(t, both)
}

func TestAuditRepo_ListLimit(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewAuditRepo(writeDB)

	for i := 0; i < 5; i++ {
		seedAudit(t, repo, domain.AuditEvent{ActorID: 1, ActorRole: domain.RoleAdmin, Action: domain.ActionLogin})
	}

	events, err := repo.List(context.Background(), domain.AuditFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestAuditRepo_InsertUnauthenticatedActor(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewAuditRepo(writeDB)

	// Denied anonymous attempts carry actor_id 0 and an empty role; the
	// table must accept them.
	err := repo.Insert(context.Background(), &domain.AuditEvent{
		Action:  domain.ActionUnauthorizedAccess,
		Details: "operation=view_raw_records",
	})
	require.NoError(t, err)

	events, err := repo.List(context.Background(), domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Zero(t, events[0].ActorID)
	assert.Empty(t, string(events[0].ActorRole))
}
