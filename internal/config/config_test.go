package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_PATH", "LISTEN_ADDR", "ENCRYPTION_KEY", "JWT_SECRET", "LOG_LEVEL",
		"ENV", "SWEEP_SCHEDULE", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"CORS_ALLOWED_ORIGINS", "DEFAULT_ADMIN_PASSWORD",
		"DEFAULT_DOCTOR_PASSWORD", "DEFAULT_RECEPTION_PASSWORD",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key) //nolint:errcheck
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "clinicdesk.sqlite", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, float64(100), cfg.RateLimitRPS)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.SweepSchedule)

	// Missing secrets produce loud warnings, not failures.
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NotEmpty(t, cfg.AdminPassword)
	assert.GreaterOrEqual(t, len(cfg.Warnings), 3)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "/data/clinic.sqlite")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("ENCRYPTION_KEY", "abc123")
	t.Setenv("SWEEP_SCHEDULE", "0 3 * * *")
	t.Setenv("RATE_LIMIT_RPS", "10.5")
	t.Setenv("RATE_LIMIT_BURST", "20")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ENV", "production")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "s3cret")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/data/clinic.sqlite", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "0 3 * * *", cfg.SweepSchedule)
	assert.Equal(t, 10.5, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsProduction())
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFromEnv_InvalidSweepSchedule(t *testing.T) {
	clearEnv(t)
	t.Setenv("SWEEP_SCHEDULE", "not a cron expr")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SWEEP_SCHEDULE")
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.in}
		assert.Equal(t, tt.want, cfg.SlogLevel(), tt.in)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := `# comment line
DB_PATH=/tmp/from-dotenv.sqlite
JWT_SECRET="quoted value"
LOG_LEVEL='debug'

NOT_A_PAIR
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// A variable already in the environment wins over the file.
	t.Setenv("LOG_LEVEL", "error")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "/tmp/from-dotenv.sqlite", os.Getenv("DB_PATH"))
	assert.Equal(t, "quoted value", os.Getenv("JWT_SECRET"))
	assert.Equal(t, "error", os.Getenv("LOG_LEVEL"))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "no-such.env")))
}
