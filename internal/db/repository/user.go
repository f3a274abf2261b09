package repository

import (
	"context"
	"database/sql"
	"strings"

	"clinicdesk/internal/domain"
)

// UserRepo implements domain.UserRepository.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool *sql.DB) *UserRepo {
	return &UserRepo{db: pool}
}

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, username, password_hash, role, created_at
		 FROM users WHERE username = ?`, strings.ToLower(username))
	return scanUser(row)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, username, password_hash, role, created_at
		 FROM users WHERE user_id = ?`, id)
	return scanUser(row)
}

// Upsert inserts a user, or refreshes the role when the username already
// exists. Existing password hashes are left alone so seeding cannot reset
// an operator-changed password.
func (r *UserRepo) Upsert(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role)
		 VALUES (?, ?, ?)
		 ON CONFLICT (username) DO UPDATE SET role = excluded.role`,
		strings.ToLower(u.Username), u.PasswordHash, string(u.Role))
	return mapDBError(err)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	u.Role = parsed
	return &u, nil
}
