// Package api provides HTTP handlers for the clinic desk REST API.
package api

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinicdesk/internal/service/access"
	auditsvc "clinicdesk/internal/service/audit"
	"clinicdesk/internal/service/auth"
	"clinicdesk/internal/service/records"
)

// Handler bundles the services behind the HTTP surface. The presentation
// layer stays thin: decode, call the service, map the error, encode.
type Handler struct {
	records *records.Service
	auth    *auth.Service
	audit   *auditsvc.Service
	policy  *access.Policy
	healthy func() error
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required service dependencies.
// The policy gates the single-record endpoint, since the underlying
// service helper carries no check of its own. healthDB is pinged by the
// health endpoint.
func NewHandler(recordsSvc *records.Service, authSvc *auth.Service, auditSvc *auditsvc.Service, policy *access.Policy, healthDB *sql.DB, logger *slog.Logger) *Handler {
	return &Handler{
		records: recordsSvc,
		auth:    authSvc,
		audit:   auditSvc,
		policy:  policy,
		healthy: healthDB.Ping,
		logger:  logger,
	}
}

// Routes mounts the authenticated API routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/auth/logout", h.handleLogout)
	r.Get("/patients", h.handleListPatients)
	r.Post("/patients", h.handleCreatePatient)
	r.Get("/patients/{id}", h.handleGetPatient)
	r.Put("/patients/{id}", h.handleUpdatePatient)
	r.Delete("/patients/{id}", h.handleDeletePatient)
	r.Post("/patients/refresh-anonymization", h.handleRefreshAnonymization)
	r.Get("/audit", h.handleListAudit)
}

// HandleHealth reports store reachability. Public.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.healthy(); err != nil {
		h.logger.Error("health check failed", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("internal error", "error", err)
		// Do not leak internals to the client.
		h.writeJSON(w, status, errorResponse{Code: status, Message: "internal server error"})
		return
	}
	h.writeJSON(w, status, errorResponse{Code: status, Message: err.Error()})
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
