package domain

import "time"

// PatientRecord is the sole domain entity of the record store.
//
// The derived triple (AnonymizedName, AnonymizedContact, MaskedDiagnosis) is
// always a deterministic function of the raw fields at the time of the last
// write; raw and derived fields are written in one statement so readers never
// observe a half-updated row. Diagnosis is persisted in its codec-transformed
// form and decoded on every read.
type PatientRecord struct {
	ID                int64
	Name              string
	Contact           string
	Diagnosis         string
	AnonymizedName    string
	AnonymizedContact string
	MaskedDiagnosis   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AnonymizedPatient is the de-identified projection served to doctors.
type AnonymizedPatient struct {
	ID                int64
	AnonymizedName    string
	AnonymizedContact string
	MaskedDiagnosis   string
	CreatedAt         time.Time
}

// Anonymized returns the de-identified projection of the record.
func (p PatientRecord) Anonymized() AnonymizedPatient {
	return AnonymizedPatient{
		ID:                p.ID,
		AnonymizedName:    p.AnonymizedName,
		AnonymizedContact: p.AnonymizedContact,
		MaskedDiagnosis:   p.MaskedDiagnosis,
		CreatedAt:         p.CreatedAt,
	}
}

// DerivedFields groups the three de-identified values recomputed on every write.
type DerivedFields struct {
	AnonymizedName    string
	AnonymizedContact string
	MaskedDiagnosis   string
}

// RecordView selects which representation a listing returns.
type RecordView string

const (
	ViewRaw        RecordView = "raw"
	ViewAnonymized RecordView = "anonymized"
)

// ParseRecordView validates a view query parameter.
func ParseRecordView(s string) (RecordView, error) {
	switch RecordView(s) {
	case ViewRaw, ViewAnonymized:
		return RecordView(s), nil
	}
	return "", ErrValidation("view must be %q or %q", ViewRaw, ViewAnonymized)
}
