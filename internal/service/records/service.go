// Package records orchestrates patient-record operations: policy check,
// masking, diagnosis encryption, store access, and audit logging.
package records

import (
	"context"
	"fmt"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/privacy"
	"clinicdesk/internal/service/access"
)

// Service is the patient record service. It owns derivation and write
// ordering; the repository owns durability and identifier assignment.
type Service struct {
	patients domain.PatientRepository
	audit    domain.AuditRepository
	policy   *access.Policy
	codec    *privacy.Codec
}

// NewService creates a record service. The codec instance decides once
// whether diagnoses are encrypted at rest.
func NewService(patients domain.PatientRepository, audit domain.AuditRepository, policy *access.Policy, codec *privacy.Codec) *Service {
	return &Service{patients: patients, audit: audit, policy: policy, codec: codec}
}

// ListPatients returns every record with all fields, diagnosis decrypted,
// newest first. Admin and receptionist only.
func (s *Service) ListPatients(ctx context.Context) ([]domain.PatientRecord, error) {
	if _, err := s.policy.Authorize(ctx, access.OpViewRaw); err != nil {
		return nil, err
	}
	records, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		plain, err := s.codec.Decrypt(records[i].Diagnosis)
		if err != nil {
			return nil, err
		}
		records[i].Diagnosis = plain
	}
	return records, nil
}

// ListAnonymizedPatients returns the de-identified projection, newest
// first. Admin and doctor only. The derived fields are read as stored;
// nothing is decrypted.
func (s *Service) ListAnonymizedPatients(ctx context.Context) ([]domain.AnonymizedPatient, error) {
	if _, err := s.policy.Authorize(ctx, access.OpViewAnonymized); err != nil {
		return nil, err
	}
	records, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AnonymizedPatient, len(records))
	for i, p := range records {
		out[i] = p.Anonymized()
	}
	return out, nil
}

// GetPatient returns the full record with diagnosis decrypted. It is an
// internal helper with no policy check of its own; callers gate access
// before invoking it.
func (s *Service) GetPatient(ctx context.Context, id int64) (*domain.PatientRecord, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plain, err := s.codec.Decrypt(p.Diagnosis)
	if err != nil {
		return nil, err
	}
	p.Diagnosis = plain
	return p, nil
}

// CreatePatient derives the de-identified fields, encrypts the diagnosis,
// and inserts the record. Returns the store-assigned id.
func (s *Service) CreatePatient(ctx context.Context, name, contact, diagnosis string) (int64, error) {
	id, err := s.policy.Authorize(ctx, access.OpWriteRecord)
	if err != nil {
		return 0, err
	}
	if err := validateRecordInput(name, contact, diagnosis); err != nil {
		return 0, err
	}

	derived := deriveFields(name, contact, diagnosis)
	stored, err := s.codec.Encrypt(diagnosis)
	if err != nil {
		return 0, err
	}
	created, err := s.patients.Create(ctx, &domain.PatientRecord{
		Name:              name,
		Contact:           contact,
		Diagnosis:         stored,
		AnonymizedName:    derived.AnonymizedName,
		AnonymizedContact: derived.AnonymizedContact,
		MaskedDiagnosis:   derived.MaskedDiagnosis,
	})
	if err != nil {
		return 0, err
	}

	s.logAction(ctx, id, domain.ActionCreatePatient, fmt.Sprintf("patient_id=%d", created.ID))
	return created.ID, nil
}

// UpdatePatient recomputes every derived field from the new raw values —
// old derived state is never merged — re-encrypts the diagnosis, and
// writes the row in one statement.
func (s *Service) UpdatePatient(ctx context.Context, patientID int64, name, contact, diagnosis string) error {
	id, err := s.policy.Authorize(ctx, access.OpWriteRecord)
	if err != nil {
		return err
	}
	if err := validateRecordInput(name, contact, diagnosis); err != nil {
		return err
	}

	derived := deriveFields(name, contact, diagnosis)
	stored, err := s.codec.Encrypt(diagnosis)
	if err != nil {
		return err
	}
	if err := s.patients.Update(ctx, &domain.PatientRecord{
		ID:                patientID,
		Name:              name,
		Contact:           contact,
		Diagnosis:         stored,
		AnonymizedName:    derived.AnonymizedName,
		AnonymizedContact: derived.AnonymizedContact,
		MaskedDiagnosis:   derived.MaskedDiagnosis,
	}); err != nil {
		return err
	}

	s.logAction(ctx, id, domain.ActionUpdatePatient, fmt.Sprintf("patient_id=%d", patientID))
	return nil
}

// DeletePatient removes the record. Admin only.
func (s *Service) DeletePatient(ctx context.Context, patientID int64) error {
	id, err := s.policy.Authorize(ctx, access.OpDeleteRecord)
	if err != nil {
		return err
	}
	if err := s.patients.Delete(ctx, patientID); err != nil {
		return err
	}

	s.logAction(ctx, id, domain.ActionDeletePatient, fmt.Sprintf("patient_id=%d", patientID))
	return nil
}

// RefreshAnonymizedFields recomputes the derived fields of every record
// inside one store transaction. Admin only. One audit event per sweep
// regardless of record count. Returns the number of records refreshed.
func (s *Service) RefreshAnonymizedFields(ctx context.Context) (int, error) {
	id, err := s.policy.Authorize(ctx, access.OpRefreshAnonymization)
	if err != nil {
		return 0, err
	}

	count, err := s.patients.Sweep(ctx, func(p domain.PatientRecord) (domain.DerivedFields, error) {
		plain, err := s.codec.Decrypt(p.Diagnosis)
		if err != nil {
			return domain.DerivedFields{}, err
		}
		return deriveFields(p.Name, p.Contact, plain), nil
	})
	if err != nil {
		return 0, err
	}

	s.logAction(ctx, id, domain.ActionRefreshAnonymization, fmt.Sprintf("records=%d", count))
	return count, nil
}

func (s *Service) logAction(ctx context.Context, id domain.Identity, action, details string) {
	_ = s.audit.Insert(ctx, &domain.AuditEvent{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    action,
		Details:   details,
	})
}

func deriveFields(name, contact, diagnosis string) domain.DerivedFields {
	return domain.DerivedFields{
		AnonymizedName:    privacy.MaskName(name),
		AnonymizedContact: privacy.MaskContact(contact),
		MaskedDiagnosis:   privacy.MaskDiagnosis(diagnosis),
	}
}

func validateRecordInput(name, contact, diagnosis string) error {
	switch {
	case name == "":
		return domain.ErrValidation("name is required")
	case contact == "":
		return domain.ErrValidation("contact is required")
	case diagnosis == "":
		return domain.ErrValidation("diagnosis is required")
	}
	return nil
}
