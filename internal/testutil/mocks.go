// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase. This follows the Go convention of a
// shared test utility package (like net/http/httptest).
package testutil

import (
	"context"

	"clinicdesk/internal/domain"
)

// === Audit Repository Mock ===

// MockAuditRepo implements domain.AuditRepository for testing.
type MockAuditRepo struct {
	InsertFn func(ctx context.Context, e *domain.AuditEvent) error
	ListFn   func(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error)
	Entries  []*domain.AuditEvent // collected entries for assertions
}

// Insert implements the interface method for testing.
func (m *MockAuditRepo) Insert(ctx context.Context, e *domain.AuditEvent) error {
	if m.InsertFn != nil {
		if err := m.InsertFn(ctx, e); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, e)
	return nil
}

// List implements the interface method for testing.
func (m *MockAuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	panic("unexpected call to MockAuditRepo.List")
}

// LastEntry returns the last collected audit entry, or nil if none.
func (m *MockAuditRepo) LastEntry() *domain.AuditEvent {
	if len(m.Entries) == 0 {
		return nil
	}
	return m.Entries[len(m.Entries)-1]
}

// HasAction returns true if any collected entry has the given action.
func (m *MockAuditRepo) HasAction(action string) bool {
	for _, e := range m.Entries {
		if e.Action == action {
			return true
		}
	}
	return false
}

var _ domain.AuditRepository = (*MockAuditRepo)(nil)

// === Patient Repository Mock ===

// MockPatientRepo implements domain.PatientRepository for testing.
// Uses function fields so tests only need to set the methods they care about.
type MockPatientRepo struct {
	CreateFn  func(ctx context.Context, p *domain.PatientRecord) (*domain.PatientRecord, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.PatientRecord, error)
	ListFn    func(ctx context.Context) ([]domain.PatientRecord, error)
	UpdateFn  func(ctx context.Context, p *domain.PatientRecord) error
	DeleteFn  func(ctx context.Context, id int64) error
	SweepFn   func(ctx context.Context, recompute func(domain.PatientRecord) (domain.DerivedFields, error)) (int, error)
}

// Create implements the interface method for testing.
func (m *MockPatientRepo) Create(ctx context.Context, p *domain.PatientRecord) (*domain.PatientRecord, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	panic("unexpected call to MockPatientRepo.Create")
}

// GetByID implements the interface method for testing.
func (m *MockPatientRepo) GetByID(ctx context.Context, id int64) (*domain.PatientRecord, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockPatientRepo.GetByID")
}

// List implements the interface method for testing.
func (m *MockPatientRepo) List(ctx context.Context) ([]domain.PatientRecord, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	panic("unexpected call to MockPatientRepo.List")
}

// Update implements the interface method for testing.
func (m *MockPatientRepo) Update(ctx context.Context, p *domain.PatientRecord) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, p)
	}
	panic("unexpected call to MockPatientRepo.Update")
}

// Delete implements the interface method for testing.
func (m *MockPatientRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	panic("unexpected call to MockPatientRepo.Delete")
}

// Sweep implements the interface method for testing.
func (m *MockPatientRepo) Sweep(ctx context.Context, recompute func(domain.PatientRecord) (domain.DerivedFields, error)) (int, error) {
	if m.SweepFn != nil {
		return m.SweepFn(ctx, recompute)
	}
	panic("unexpected call to MockPatientRepo.Sweep")
}

var _ domain.PatientRepository = (*MockPatientRepo)(nil)

// === User Repository Mock ===

// MockUserRepo implements domain.UserRepository for testing.
type MockUserRepo struct {
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	GetByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	UpsertFn        func(ctx context.Context, u *domain.User) error
}

// GetByUsername implements the interface method for testing.
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	panic("unexpected call to MockUserRepo.GetByUsername")
}

// GetByID implements the interface method for testing.
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockUserRepo.GetByID")
}

// Upsert implements the interface method for testing.
func (m *MockUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, u)
	}
	panic("unexpected call to MockUserRepo.Upsert")
}

var _ domain.UserRepository = (*MockUserRepo)(nil)
