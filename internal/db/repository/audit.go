package repository

import (
	"context"
	"database/sql"

	"clinicdesk/internal/domain"
)

const defaultAuditLimit = 100

// AuditRepo implements domain.AuditRepository. Rows are append-only; there
// is no update or delete path.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(pool *sql.DB) *AuditRepo {
	return &AuditRepo{db: pool}
}

var _ domain.AuditRepository = (*AuditRepo)(nil)

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (actor_id, actor_role, action, details)
		 VALUES (?, ?, ?, ?)`,
		e.ActorID, string(e.ActorRole), e.Action, e.Details)
	return mapDBError(err)
}

func (r *AuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	query := `SELECT log_id, actor_id, actor_role, action, details, created_at
		FROM audit_logs`
	var clauses []string
	var args []any
	if filter.Role != nil {
		clauses = append(clauses, `actor_role = ?`)
		args = append(args, string(*filter.Role))
	}
	if filter.ActorID != nil {
		clauses = append(clauses, `actor_id = ?`)
		args = append(args, *filter.ActorID)
	}
	for i, c := range clauses {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	query += ` ORDER BY created_at DESC, log_id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		var role string
		if err := rows.Scan(&e.ID, &e.ActorID, &role, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ActorRole = domain.Role(role)
		events = append(events, e)
	}
	return events, rows.Err()
}
