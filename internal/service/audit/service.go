// Package audit serves the admin reporting view over the audit log.
package audit

import (
	"context"

	"clinicdesk/internal/domain"
)

// Service exposes read access to the audit trail. The trail itself is
// written by the other services; this one never feeds decisions back into
// them.
type Service struct {
	audit domain.AuditRepository
}

// NewService creates an audit query service.
func NewService(auditRepo domain.AuditRepository) *Service {
	return &Service{audit: auditRepo}
}

// ListEvents returns recent audit events, optionally filtered by role or
// actor. Admin only; a denied attempt is itself recorded.
func (s *Service) ListEvents(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok || id.Role != domain.RoleAdmin {
		_ = s.audit.Insert(ctx, &domain.AuditEvent{
			ActorID:   id.UserID,
			ActorRole: id.Role,
			Action:    domain.ActionUnauthorizedAccess,
			Details:   "operation=view_audit_log",
		})
		return nil, domain.ErrAccessDenied("admin privileges required")
	}
	return s.audit.List(ctx, filter)
}
