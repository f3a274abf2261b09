// Package access enforces the fixed role-to-operation policy. It is a
// small closed table, not a rules engine.
package access

import (
	"context"

	"clinicdesk/internal/domain"
)

// Operation names a policy-gated action on patient records.
type Operation string

const (
	OpViewRaw              Operation = "view_raw_records"
	OpViewAnonymized       Operation = "view_anonymized_records"
	OpWriteRecord          Operation = "write_record"
	OpDeleteRecord         Operation = "delete_record"
	OpRefreshAnonymization Operation = "refresh_anonymization"
)

// allowedRoles is the fixed policy table. Receptionists handle raw intake
// data but never the de-identified research view; doctors see only the
// de-identified view.
var allowedRoles = map[Operation]map[domain.Role]bool{
	OpViewRaw:              {domain.RoleAdmin: true, domain.RoleReceptionist: true},
	OpViewAnonymized:       {domain.RoleAdmin: true, domain.RoleDoctor: true},
	OpWriteRecord:          {domain.RoleAdmin: true, domain.RoleReceptionist: true},
	OpDeleteRecord:         {domain.RoleAdmin: true},
	OpRefreshAnonymization: {domain.RoleAdmin: true},
}

// Policy authorizes operations against the fixed table and records every
// denial in the audit log.
type Policy struct {
	audit domain.AuditRepository
}

// NewPolicy creates a Policy writing denials to the given audit sink.
func NewPolicy(audit domain.AuditRepository) *Policy {
	return &Policy{audit: audit}
}

// Authorize checks the identity in ctx against the allowed-role set for op.
// It runs before any store access. On denial it appends exactly one
// unauthorized_access audit event and returns an AccessDeniedError; admits
// are silent here — success events belong to the operations themselves.
func (p *Policy) Authorize(ctx context.Context, op Operation) (domain.Identity, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		p.logDenial(ctx, domain.Identity{}, op)
		return domain.Identity{}, domain.ErrAccessDenied("authentication required")
	}
	if !id.Role.Valid() || !allowedRoles[op][id.Role] {
		p.logDenial(ctx, id, op)
		return domain.Identity{}, domain.ErrAccessDenied("role %s may not %s", id.Role, op)
	}
	return id, nil
}

func (p *Policy) logDenial(ctx context.Context, id domain.Identity, op Operation) {
	_ = p.audit.Insert(ctx, &domain.AuditEvent{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.ActionUnauthorizedAccess,
		Details:   "operation=" + string(op),
	})
}
