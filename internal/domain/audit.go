package domain

import "time"

// AuditEvent is a single append-only audit log record. Events are created
// once per authorized write and once per denied access attempt, and are
// never mutated or deleted.
type AuditEvent struct {
	ID        int64
	ActorID   int64
	ActorRole Role
	Action    string
	Details   string
	CreatedAt time.Time
}

// Audit action names. The set mirrors what the front desk actually does;
// keep stable — reporting views key off these strings.
const (
	ActionLogin                = "login"
	ActionLoginFailed          = "login_failed"
	ActionLogout               = "logout"
	ActionCreatePatient        = "create_patient"
	ActionUpdatePatient        = "update_patient"
	ActionDeletePatient        = "delete_patient"
	ActionRefreshAnonymization = "refresh_anonymization"
	ActionUnauthorizedAccess   = "unauthorized_access"
)

// AuditFilter holds filter parameters for querying audit events.
// Nil fields mean "no filter"; Limit of 0 means the default limit.
type AuditFilter struct {
	Role    *Role
	ActorID *int64
	Limit   int
}
