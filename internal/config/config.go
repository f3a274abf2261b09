// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// Config holds the configuration for the clinic desk server.
type Config struct {
	DBPath     string // path to the SQLite record store
	ListenAddr string // HTTP listen address (default ":8080")

	// EncryptionKey is a 64-char hex string (32-byte AES key) for the
	// diagnosis confidentiality codec. Empty or invalid keys degrade to
	// plain-text storage; the degradation is surfaced via Warnings.
	EncryptionKey string

	JWTSecret string // HS256 secret for session tokens
	LogLevel  string // log level: debug, info, warn, error (default "info")
	Env       string // environment: "development" (default) or "production"

	// SweepSchedule is an optional cron expression for the scheduled
	// re-anonymization sweep. Empty disables scheduling.
	SweepSchedule string

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Seed passwords for the default staff accounts, used only on first run.
	AdminPassword     string
	DoctorPassword    string
	ReceptionPassword string

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:            os.Getenv("DB_PATH"),
		ListenAddr:        os.Getenv("LISTEN_ADDR"),
		EncryptionKey:     os.Getenv("ENCRYPTION_KEY"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		Env:               os.Getenv("ENV"),
		SweepSchedule:     os.Getenv("SWEEP_SCHEDULE"),
		AdminPassword:     os.Getenv("DEFAULT_ADMIN_PASSWORD"),
		DoctorPassword:    os.Getenv("DEFAULT_DOCTOR_PASSWORD"),
		ReceptionPassword: os.Getenv("DEFAULT_RECEPTION_PASSWORD"),
	}

	// Rate limiting
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	// CORS
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "clinicdesk.sqlite"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
		cfg.Warnings = append(cfg.Warnings, "JWT_SECRET not set — using insecure default. Set JWT_SECRET in production!")
	}
	if cfg.EncryptionKey == "" {
		cfg.Warnings = append(cfg.Warnings, "ENCRYPTION_KEY not set — diagnoses will be stored in plain text")
	}
	if cfg.SweepSchedule != "" {
		if _, err := cron.ParseStandard(cfg.SweepSchedule); err != nil {
			return nil, fmt.Errorf("invalid SWEEP_SCHEDULE %q: %w", cfg.SweepSchedule, err)
		}
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "ChangeMe123!"
		cfg.Warnings = append(cfg.Warnings, "DEFAULT_ADMIN_PASSWORD not set — seeding admin with a well-known default")
	}
	if cfg.DoctorPassword == "" {
		cfg.DoctorPassword = "DoctorPass123!"
	}
	if cfg.ReceptionPassword == "" {
		cfg.ReceptionPassword = "ReceptionPass123!"
	}

	return cfg, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = stripQuotes(value)
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
