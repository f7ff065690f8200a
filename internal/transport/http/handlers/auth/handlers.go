package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/access"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/auth"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/api"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/middleware"
)

type Handler struct {
	DB     db.Querier
	Secret string
	Perms  *access.Store
}

func NewHandler(q db.Querier, secret string, perms *access.Store) *Handler {
	return &Handler{DB: q, Secret: secret, Perms: perms}
}

const tokenTTL = 8 * time.Hour

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)

	var id, hash, role string
	err := h.DB.QueryRow(r.Context(), `
    SELECT id, password_hash, role FROM users WHERE name = $1
  `, payload.Name).Scan(&id, &hash, &role)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: id, Name: payload.Name, Role: role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]string{
			"id":   id,
			"name": payload.Name,
			"role": role,
		},
	}, middleware.GetRequestID(r.Context()))
}

// HandleMe returns the caller's identity together with their
// permission record, so clients can decide which actions to offer.
// Server-side guards re-check every mutation regardless.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var perm *access.UserPermission
	if !user.IsAdmin() {
		loaded, err := h.Perms.GetByUserName(r.Context(), user.Name)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "permission_error", "failed to load permissions", middleware.GetRequestID(r.Context()))
			return
		}
		perm = loaded
	}

	api.Success(w, map[string]any{
		"user": map[string]string{
			"id":   user.UserID,
			"name": user.Name,
			"role": user.Role,
		},
		"permissions": perm,
	}, middleware.GetRequestID(r.Context()))
}
