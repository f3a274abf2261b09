package app

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"clinicdesk/internal/config"
	"clinicdesk/internal/domain"
)

// seedUsers inserts the default admin, doctor, and reception accounts.
// Idempotent: existing accounts keep their password and only have the
// role refreshed, so re-running a deployment never locks anyone out.
func seedUsers(ctx context.Context, users domain.UserRepository, cfg *config.Config) error {
	defaults := []struct {
		username string
		password string
		role     domain.Role
	}{
		{"admin", cfg.AdminPassword, domain.RoleAdmin},
		{"doctor", cfg.DoctorPassword, domain.RoleDoctor},
		{"reception", cfg.ReceptionPassword, domain.RoleReceptionist},
	}

	for _, d := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", d.username, err)
		}
		if err := users.Upsert(ctx, &domain.User{
			Username:     d.username,
			PasswordHash: string(hash),
			Role:         d.role,
		}); err != nil {
			return fmt.Errorf("upsert %s: %w", d.username, err)
		}
	}
	return nil
}
