package app

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"clinicdesk/internal/config"
	"clinicdesk/internal/db"
	"clinicdesk/internal/db/repository"
	"clinicdesk/internal/domain"
	"clinicdesk/internal/privacy"
)

func testDeps(t *testing.T, cfg *config.Config) Deps {
	t.Helper()
	writeDB, readDB := db.OpenTestSQLite(t)
	return Deps{
		Cfg:     cfg,
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		AdminPassword:     "admin-pw",
		DoctorPassword:    "doctor-pw",
		ReceptionPassword: "reception-pw",
	}
}

func TestNew_SeedsDefaultUsers(t *testing.T) {
	deps := testDeps(t, testConfig())

	application, err := New(context.Background(), deps)
	require.NoError(t, err)
	require.NotNil(t, application.Services.Records)

	users := repository.NewUserRepo(deps.WriteDB)
	tests := []struct {
		username string
		password string
		role     domain.Role
	}{
		{"admin", "admin-pw", domain.RoleAdmin},
		{"doctor", "doctor-pw", domain.RoleDoctor},
		{"reception", "reception-pw", domain.RoleReceptionist},
	}
	for _, tt := range tests {
		u, err := users.GetByUsername(context.Background(), tt.username)
		require.NoError(t, err, tt.username)
		assert.Equal(t, tt.role, u.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(tt.password)))
	}
}

func TestNew_SeedIsIdempotent(t *testing.T) {
	deps := testDeps(t, testConfig())

	_, err := New(context.Background(), deps)
	require.NoError(t, err)

	users := repository.NewUserRepo(deps.WriteDB)
	before, err := users.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)

	_, err = New(context.Background(), deps)
	require.NoError(t, err)

	after, err := users.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash, "re-seeding keeps the stored password")
}

func TestNew_CodecSelection(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		application, err := New(context.Background(), testDeps(t, testConfig()))
		require.NoError(t, err)
		assert.Equal(t, privacy.ModePlaintext, application.Codec.Mode())
	})

	t.Run("valid key", func(t *testing.T) {
		cfg := testConfig()
		cfg.EncryptionKey = strings.Repeat("ab", 32)
		application, err := New(context.Background(), testDeps(t, cfg))
		require.NoError(t, err)
		assert.Equal(t, privacy.ModeAES256GCM, application.Codec.Mode())
	})

	t.Run("bad key degrades to plaintext", func(t *testing.T) {
		cfg := testConfig()
		cfg.EncryptionKey = "too-short"
		application, err := New(context.Background(), testDeps(t, cfg))
		require.NoError(t, err)
		assert.Equal(t, privacy.ModePlaintext, application.Codec.Mode())
	})
}
