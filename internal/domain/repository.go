package domain

import "context"

// PatientRepository provides row-level operations on the patients table.
// The store owns durability and identifier assignment; it holds no
// masking or codec logic.
type PatientRepository interface {
	Create(ctx context.Context, p *PatientRecord) (*PatientRecord, error)
	GetByID(ctx context.Context, id int64) (*PatientRecord, error)
	// List returns all records ordered by creation time descending.
	List(ctx context.Context) ([]PatientRecord, error)
	Update(ctx context.Context, p *PatientRecord) error
	Delete(ctx context.Context, id int64) error
	// Sweep re-derives the de-identified fields for every record inside a
	// single transaction. The recompute callback receives each stored row
	// (diagnosis still in its persisted form) and returns the fields to
	// write back; the caller supplies all masking/codec logic. Returns the
	// number of rows updated.
	Sweep(ctx context.Context, recompute func(PatientRecord) (DerivedFields, error)) (int, error)
}

// UserRepository provides access to the staff user table.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// Upsert inserts a user or, when the username exists, refreshes its
	// role. Used by idempotent seeding.
	Upsert(ctx context.Context, u *User) error
}

// AuditRepository is the append-only audit sink. The service layer is
// write-mostly; List backs the admin reporting view.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEvent) error
	List(ctx context.Context, filter AuditFilter) ([]AuditEvent, error)
}
