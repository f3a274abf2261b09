// Package auth verifies staff credentials and produces session identities.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"clinicdesk/internal/domain"
)

const defaultTokenTTL = 12 * time.Hour

// Service authenticates against the local user table and issues signed
// session tokens. It consumes the resulting identity everywhere else; the
// credential check lives only here.
type Service struct {
	users     domain.UserRepository
	audit     domain.AuditRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewService creates an auth service signing tokens with jwtSecret.
func NewService(users domain.UserRepository, audit domain.AuditRepository, jwtSecret []byte) *Service {
	return &Service{users: users, audit: audit, jwtSecret: jwtSecret, tokenTTL: defaultTokenTTL}
}

// Authenticate validates a username/password pair. Success returns the
// session identity and a signed token and audits a login; a wrong password
// audits a login_failed for the matched user. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (domain.Identity, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Identity{}, "", domain.ErrAccessDenied("invalid credentials")
		}
		return domain.Identity{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		_ = s.audit.Insert(ctx, &domain.AuditEvent{
			ActorID:   user.ID,
			ActorRole: user.Role,
			Action:    domain.ActionLoginFailed,
			Details:   "invalid password",
		})
		return domain.Identity{}, "", domain.ErrAccessDenied("invalid credentials")
	}

	id := domain.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
	token, err := s.issueToken(id)
	if err != nil {
		return domain.Identity{}, "", err
	}

	_ = s.audit.Insert(ctx, &domain.AuditEvent{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.ActionLogin,
		Details:   "successful login",
	})
	return id, token, nil
}

// Logout records the end of a session for the context identity. Tokens are
// stateless, so this is purely an audit affair.
func (s *Service) Logout(ctx context.Context) error {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return domain.ErrAccessDenied("authentication required")
	}
	return s.audit.Insert(ctx, &domain.AuditEvent{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.ActionLogout,
		Details:   "user logged out",
	})
}

func (s *Service) issueToken(id domain.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", id.UserID),
		"username": id.Username,
		"role":     string(id.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
