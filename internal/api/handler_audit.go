package api

import (
	"net/http"
	"strconv"
	"time"

	"clinicdesk/internal/domain"
)

type auditEventResponse struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	var filter domain.AuditFilter

	if v := r.URL.Query().Get("role"); v != "" {
		role, err := domain.ParseRole(v)
		if err != nil {
			h.writeError(w, domain.ErrValidation("unknown role %q", v))
			return
		}
		filter.Role = &role
	}
	if v := r.URL.Query().Get("actor_id"); v != "" {
		actorID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.writeError(w, domain.ErrValidation("invalid actor_id %q", v))
			return
		}
		filter.ActorID = &actorID
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			h.writeError(w, domain.ErrValidation("invalid limit %q", v))
			return
		}
		filter.Limit = limit
	}

	events, err := h.audit.ListEvents(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]auditEventResponse, len(events))
	for i, e := range events {
		out[i] = auditEventResponse{
			ID:        e.ID,
			ActorID:   e.ActorID,
			ActorRole: string(e.ActorRole),
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}
	h.writeJSON(w, http.StatusOK, out)
}
