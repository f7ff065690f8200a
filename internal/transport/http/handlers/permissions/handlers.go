package permissionshandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/access"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/api"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/middleware"
)

type Handler struct {
	Store *access.Store
}

func NewHandler(store *access.Store) *Handler {
	return &Handler{Store: store}
}

// All routes are admin-only: permission records decide what everyone
// else may do, so only admins may touch them.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/permissions", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{permissionID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	perms, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "permission_list_failed", "failed to list permissions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, perms, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	perm, err := h.Store.Get(r.Context(), chi.URLParam(r, "permissionID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "permission record not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, perm, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload access.UserPermission
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.UserName = strings.TrimSpace(payload.UserName)
	if payload.UserName == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "user name is required", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		if db.IsUniqueViolation(err) {
			api.Fail(w, http.StatusConflict, "permission_exists", "permission record already exists for this user", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "permission_create_failed", "failed to create permission record", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	permissionID := chi.URLParam(r, "permissionID")

	var payload access.UserPermission
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.UserName = strings.TrimSpace(payload.UserName)
	if payload.UserName == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "user name is required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Update(r.Context(), permissionID, payload); err != nil {
		if db.IsUniqueViolation(err) {
			api.Fail(w, http.StatusConflict, "permission_exists", "permission record already exists for this user", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusNotFound, "not_found", "permission record not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": permissionID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	permissionID := chi.URLParam(r, "permissionID")
	if err := h.Store.Delete(r.Context(), permissionID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "permission record not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": permissionID}, middleware.GetRequestID(r.Context()))
}
