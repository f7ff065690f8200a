package employeeshandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/access"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/employee"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/api"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/middleware"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
	Perms *access.Store
}

func NewHandler(store *employee.Store, perms *access.Store) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireCapability(access.CapAddEmployees, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Delete("/", h.handleDeleteAll)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.With(middleware.RequireCapability(access.CapEditEmployees, h.Perms)).Put("/", h.handleUpdate)
			r.With(middleware.RequireCapability(access.CapDeleteEmployees, h.Perms)).Delete("/", h.handleDelete)
		})
	})
}

type employeeRequest struct {
	EmployeeNumber string `json:"employeeNumber"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	DirectManager  string `json:"directManager"`
	NationalID     string `json:"nationalId"`
	HireDate       string `json:"hireDate"`
	Status         string `json:"status"`
}

func (h *Handler) scope(r *http.Request) (access.Scope, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		return access.Scope{}, false
	}
	if user.IsAdmin() {
		return access.ScopeFor(true, nil), true
	}
	perm, err := h.Perms.GetByUserName(r.Context(), user.Name)
	if err != nil {
		return access.Scope{}, false
	}
	return access.ScopeFor(false, perm), true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(r)
	if !ok {
		api.Fail(w, http.StatusInternalServerError, "permission_error", "failed to load permissions", middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}

	filtered := make([]employee.Employee, 0, len(employees))
	for _, emp := range employees {
		if !scope.AllowsDepartment(emp.Department) {
			continue
		}
		filtered = append(filtered, emp)
	}
	lo, hi := shared.ParsePagination(r, 0, 500).Window(len(filtered))
	api.Success(w, filtered[lo:hi], middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeNumber", payload.EmployeeNumber, "employee number is required")
	v.Required("name", payload.Name, "name is required")
	v.Required("hireDate", payload.HireDate, "hire date is required")
	v.Enum("status", payload.Status, employee.Statuses, "unknown status")
	hireDate, _ := v.Date("hireDate", payload.HireDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = employee.StatusActive
	}

	id, err := h.Store.Create(r.Context(), employee.Employee{
		EmployeeNumber: strings.TrimSpace(payload.EmployeeNumber),
		Name:           strings.TrimSpace(payload.Name),
		Email:          payload.Email,
		Phone:          payload.Phone,
		Location:       payload.Location,
		Department:     payload.Department,
		Position:       payload.Position,
		DirectManager:  payload.DirectManager,
		NationalID:     payload.NationalID,
		HireDate:       hireDate,
		Status:         status,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			api.Fail(w, http.StatusConflict, "employee_exists", "employee number already exists", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

type updateRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Location      *string `json:"location"`
	Department    *string `json:"department"`
	Position      *string `json:"position"`
	DirectManager *string `json:"directManager"`
	NationalID    *string `json:"nationalId"`
	HireDate      *string `json:"hireDate"`
	Status        *string `json:"status"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	existing, err := h.Store.Get(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	update := employee.Update{
		Name:          payload.Name,
		Email:         payload.Email,
		Phone:         payload.Phone,
		Location:      payload.Location,
		Department:    payload.Department,
		Position:      payload.Position,
		DirectManager: payload.DirectManager,
		NationalID:    payload.NationalID,
		Status:        payload.Status,
	}
	if payload.HireDate != nil {
		if hireDate, ok := v.Date("hireDate", *payload.HireDate); ok {
			update.HireDate = &hireDate
		}
	}
	if payload.Status != nil {
		v.Enum("status", *payload.Status, employee.Statuses, "unknown status")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	update.Apply(existing)
	if err := h.Store.Update(r.Context(), employeeID, *existing); err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": employeeID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Store.Delete(r.Context(), employeeID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": employeeID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAll(r.Context()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
