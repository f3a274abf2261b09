// Package app provides application-level wiring and dependency injection
// for the clinic desk service.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"clinicdesk/internal/config"
	"clinicdesk/internal/db/repository"
	"clinicdesk/internal/privacy"
	"clinicdesk/internal/service/access"
	auditsvc "clinicdesk/internal/service/audit"
	"clinicdesk/internal/service/auth"
	"clinicdesk/internal/service/records"
)

// Deps holds the external dependencies that main() must provide:
// database handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler needs.
type Services struct {
	Records *records.Service
	Auth    *auth.Service
	Audit   *auditsvc.Service
}

// App holds the fully-wired application.
type App struct {
	Services Services
	Policy   *access.Policy
	Codec    *privacy.Codec
}

// New wires repositories, codec, policy, and services from the provided
// deps, and seeds the default staff accounts.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg

	// The codec mode is fixed here, once. An unusable key degrades to
	// plain-text storage; the degradation must stay visible to operators.
	codec := privacy.NewPlaintextCodec()
	if cfg.EncryptionKey != "" {
		c, err := privacy.NewAESCodec(cfg.EncryptionKey)
		if err != nil {
			deps.Logger.Warn("encryption key unusable, storing diagnoses in plain text", "error", err)
		} else {
			codec = c
		}
	}
	deps.Logger.Info("confidentiality codec initialised", "mode", string(codec.Mode()))

	patientRepo := repository.NewPatientRepo(deps.WriteDB)
	userRepo := repository.NewUserRepo(deps.WriteDB)
	auditRepo := repository.NewAuditRepo(deps.WriteDB)

	policy := access.NewPolicy(auditRepo)

	app := &App{
		Services: Services{
			Records: records.NewService(patientRepo, auditRepo, policy, codec),
			Auth:    auth.NewService(userRepo, auditRepo, []byte(cfg.JWTSecret)),
			Audit:   auditsvc.NewService(auditRepo),
		},
		Policy: policy,
		Codec:  codec,
	}

	if err := seedUsers(ctx, userRepo, cfg); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	return app, nil
}
