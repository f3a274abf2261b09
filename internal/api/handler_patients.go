package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/service/access"
)

type patientResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Contact           string    `json:"contact"`
	Diagnosis         string    `json:"diagnosis"`
	AnonymizedName    string    `json:"anonymized_name"`
	AnonymizedContact string    `json:"anonymized_contact"`
	MaskedDiagnosis   string    `json:"masked_diagnosis"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type anonymizedPatientResponse struct {
	ID                int64     `json:"id"`
	AnonymizedName    string    `json:"anonymized_name"`
	AnonymizedContact string    `json:"anonymized_contact"`
	MaskedDiagnosis   string    `json:"masked_diagnosis"`
	CreatedAt         time.Time `json:"created_at"`
}

type patientRequest struct {
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Diagnosis string `json:"diagnosis"`
}

func (h *Handler) handleListPatients(w http.ResponseWriter, r *http.Request) {
	viewParam := r.URL.Query().Get("view")
	if viewParam == "" {
		viewParam = string(domain.ViewRaw)
	}
	view, err := domain.ParseRecordView(viewParam)
	if err != nil {
		h.writeError(w, err)
		return
	}

	switch view {
	case domain.ViewAnonymized:
		records, err := h.records.ListAnonymizedPatients(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		out := make([]anonymizedPatientResponse, len(records))
		for i, p := range records {
			out[i] = anonymizedPatientResponse{
				ID:                p.ID,
				AnonymizedName:    p.AnonymizedName,
				AnonymizedContact: p.AnonymizedContact,
				MaskedDiagnosis:   p.MaskedDiagnosis,
				CreatedAt:         p.CreatedAt,
			}
		}
		h.writeJSON(w, http.StatusOK, out)
	default:
		records, err := h.records.ListPatients(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		out := make([]patientResponse, len(records))
		for i, p := range records {
			out[i] = patientToAPI(p)
		}
		h.writeJSON(w, http.StatusOK, out)
	}
}

func (h *Handler) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	// The service treats GetPatient as an internal helper, so the raw-view
	// policy check happens here, before any store access.
	if _, err := h.policy.Authorize(r.Context(), access.OpViewRaw); err != nil {
		h.writeError(w, err)
		return
	}
	id, err := patientIDFromURL(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	p, err := h.records.GetPatient(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, patientToAPI(*p))
}

func (h *Handler) handleCreatePatient(w http.ResponseWriter, r *http.Request) {
	var req patientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, domain.ErrValidation("invalid request body"))
		return
	}
	id, err := h.records.CreatePatient(r.Context(), req.Name, req.Contact, req.Diagnosis)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) handleUpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, err := patientIDFromURL(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req patientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if err := h.records.UpdatePatient(r.Context(), id, req.Name, req.Contact, req.Diagnosis); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) handleDeletePatient(w http.ResponseWriter, r *http.Request) {
	id, err := patientIDFromURL(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.records.DeletePatient(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleRefreshAnonymization(w http.ResponseWriter, r *http.Request) {
	count, err := h.records.RefreshAnonymizedFields(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"records": count})
}

func patientToAPI(p domain.PatientRecord) patientResponse {
	return patientResponse{
		ID:                p.ID,
		Name:              p.Name,
		Contact:           p.Contact,
		Diagnosis:         p.Diagnosis,
		AnonymizedName:    p.AnonymizedName,
		AnonymizedContact: p.AnonymizedContact,
		MaskedDiagnosis:   p.MaskedDiagnosis,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func patientIDFromURL(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid patient id %q", raw)
	}
	return id, nil
}
