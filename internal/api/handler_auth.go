package api

import (
	"encoding/json"
	"net/http"

	"clinicdesk/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// HandleLogin exchanges a username/password pair for a session token. Public.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		h.writeError(w, domain.ErrValidation("username and password are required"))
		return
	}

	id, token, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		UserID:   id.UserID,
		Username: id.Username,
		Role:     string(id.Role),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
