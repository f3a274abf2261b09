package repository

import (
	"context"
	"database/sql"
	"fmt"

	"clinicdesk/internal/domain"
)

const patientColumns = `patient_id, name, contact, diagnosis,
	anonymized_name, anonymized_contact, masked_diagnosis,
	created_at, updated_at`

// PatientRepo implements domain.PatientRepository on the write pool.
type PatientRepo struct {
	db *sql.DB
}

// NewPatientRepo creates a new PatientRepo.
func NewPatientRepo(pool *sql.DB) *PatientRepo {
	return &PatientRepo{db: pool}
}

var _ domain.PatientRepository = (*PatientRepo)(nil)

func (r *PatientRepo) Create(ctx context.Context, p *domain.PatientRecord) (*domain.PatientRecord, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO patients (name, contact, diagnosis,
			anonymized_name, anonymized_contact, masked_diagnosis)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Contact, p.Diagnosis,
		p.AnonymizedName, p.AnonymizedContact, p.MaskedDiagnosis)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *PatientRepo) GetByID(ctx context.Context, id int64) (*domain.PatientRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE patient_id = ?`, id)
	p, err := scanPatient(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return p, nil
}

func (r *PatientRepo) List(ctx context.Context) ([]domain.PatientRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+patientColumns+` FROM patients ORDER BY created_at DESC, patient_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PatientRecord
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *p)
	}
	return records, rows.Err()
}

// Update writes raw and derived fields in one statement so readers never
// observe a half-updated row.
func (r *PatientRepo) Update(ctx context.Context, p *domain.PatientRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE patients
		 SET name = ?, contact = ?, diagnosis = ?,
		     anonymized_name = ?, anonymized_contact = ?, masked_diagnosis = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE patient_id = ?`,
		p.Name, p.Contact, p.Diagnosis,
		p.AnonymizedName, p.AnonymizedContact, p.MaskedDiagnosis, p.ID)
	if err != nil {
		return mapDBError(err)
	}
	return requireRowAffected(res, p.ID)
}

func (r *PatientRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE patient_id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	return requireRowAffected(res, id)
}

// Sweep re-derives the de-identified fields for every record inside one
// immediate transaction, so the read-then-write sequence cannot interleave
// with concurrent writers. The recompute callback supplies all masking and
// codec logic; the store holds none.
func (r *PatientRepo) Sweep(ctx context.Context, recompute func(domain.PatientRecord) (domain.DerivedFields, error)) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sweep: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	rows, err := tx.QueryContext(ctx,
		`SELECT `+patientColumns+` FROM patients ORDER BY patient_id`)
	if err != nil {
		return 0, err
	}
	var records []domain.PatientRecord
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			rows.Close()
			return 0, err
		}
		records = append(records, *p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	updated := 0
	for _, p := range records {
		derived, err := recompute(p)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE patients
			 SET anonymized_name = ?, anonymized_contact = ?, masked_diagnosis = ?,
			     updated_at = CURRENT_TIMESTAMP
			 WHERE patient_id = ?`,
			derived.AnonymizedName, derived.AnonymizedContact, derived.MaskedDiagnosis, p.ID); err != nil {
			return 0, err
		}
		updated++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sweep: %w", err)
	}
	return updated, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (*domain.PatientRecord, error) {
	var p domain.PatientRecord
	if err := row.Scan(
		&p.ID, &p.Name, &p.Contact, &p.Diagnosis,
		&p.AnonymizedName, &p.AnonymizedContact, &p.MaskedDiagnosis,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func requireRowAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("patient %d not found", id)
	}
	return nil
}
