package contractshandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/access"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/contract"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/employee"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/expiry"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/api"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/middleware"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/shared"
)

type Handler struct {
	Store     *contract.Store
	Employees *employee.Store
	Perms     *access.Store
}

func NewHandler(store *contract.Store, employees *employee.Store, perms *access.Store) *Handler {
	return &Handler{Store: store, Employees: employees, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/contracts", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireCapability(access.CapAddContracts, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Delete("/", h.handleDeleteAll)
		r.Route("/{contractID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.With(middleware.RequireCapability(access.CapEditContracts, h.Perms)).Put("/", h.handleUpdate)
			r.With(middleware.RequireCapability(access.CapRenewContracts, h.Perms)).Post("/renew", h.handleRenew)
			r.With(middleware.RequireCapability(access.CapDeleteContracts, h.Perms)).Delete("/", h.handleDelete)
		})
	})
}

type listItem struct {
	contract.Contract
	Urgency       expiry.Bucket `json:"urgency"`
	DaysRemaining int           `json:"daysRemaining"`
	ExpiringSoon  bool          `json:"expiringSoon"`
}

func decorate(c contract.Contract, today time.Time) listItem {
	bucket, days := expiry.Classify(c.EndDate, today, expiry.ContractThresholds)
	return listItem{
		Contract:      c,
		Urgency:       bucket,
		DaysRemaining: days,
		ExpiringSoon:  c.Status == contract.StatusActive && expiry.ExpiringSoon(c.EndDate, today),
	}
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

	contracts, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_list_failed", "failed to list contracts", middleware.GetRequestID(r.Context()))
		return
	}

	today := time.Now()
	items := make([]listItem, 0, len(contracts))
	for _, c := range contracts {
		if !scope.AllowsDepartment(c.Department) {
			continue
		}
		items = append(items, decorate(c, today))
	}
	lo, hi := shared.ParsePagination(r, 0, 500).Window(len(items))
	api.Success(w, items[lo:hi], middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.Get(r.Context(), chi.URLParam(r, "contractID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "contract not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, decorate(*c, time.Now()), middleware.GetRequestID(r.Context()))
}

type contractRequest struct {
	EmployeeID     string   `json:"employeeId"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	DurationMonths *int     `json:"durationMonths"`
	Salary         *float64 `json:"salary"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes"`
	RenewalNotes   string   `json:"renewalNotes"`
}

// resolveEndDate parses an explicit end date or derives one from the
// requested duration. Both absent means an indefinite contract.
func resolveEndDate(v *shared.Validator, rawEnd string, months *int, start time.Time) *time.Time {
	if months != nil && *months <= 0 {
		v.Add("durationMonths", "must be a positive number of months")
		return nil
	}
	if rawEnd != "" {
		if parsed, ok := v.Date("endDate", rawEnd); ok {
			return &parsed
		}
		return nil
	}
	if months != nil && !start.IsZero() {
		end := contract.EndDateFor(start, *months)
		return &end
	}
	return nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload contractRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("startDate", payload.StartDate, "start date is required")
	startDate, _ := v.Date("startDate", payload.StartDate)
	endDate := resolveEndDate(v, payload.EndDate, payload.DurationMonths, startDate)
	if endDate != nil {
		v.DateOrder("startDate", startDate, "endDate", *endDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Employees.Get(r.Context(), payload.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	existing, err := h.Store.CountForEmployee(r.Context(), payload.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_create_failed", "failed to create contract", middleware.GetRequestID(r.Context()))
		return
	}

	today := time.Now()
	id, err := h.Store.Create(r.Context(), contract.Contract{
		EmployeeID:     payload.EmployeeID,
		ContractNumber: contract.NextNumber(emp.EmployeeNumber, existing),
		ContractType:   contract.DeriveType(endDate),
		StartDate:      startDate,
		EndDate:        endDate,
		DurationMonths: payload.DurationMonths,
		Salary:         payload.Salary,
		Status:         contract.DeriveStatus(endDate, today),
		Notes:          payload.Notes,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			api.Fail(w, http.StatusConflict, "contract_exists", "contract number already exists", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "contract_create_failed", "failed to create contract", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractID")
	existing, err := h.Store.Get(r.Context(), contractID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "contract not found", middleware.GetRequestID(r.Context()))
		return
	}

	var payload contractRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Enum("status", payload.Status, contract.Statuses, "unknown status")
	if payload.StartDate != "" {
		if parsed, ok := v.Date("startDate", payload.StartDate); ok {
			existing.StartDate = parsed
		}
	}
	if payload.EndDate != "" {
		if parsed, ok := v.Date("endDate", payload.EndDate); ok {
			existing.EndDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if payload.Salary != nil {
		existing.Salary = payload.Salary
	}
	if payload.DurationMonths != nil {
		existing.DurationMonths = payload.DurationMonths
	}
	if payload.Status != "" {
		existing.Status = payload.Status
	}
	if payload.Notes != "" {
		existing.Notes = payload.Notes
	}
	if payload.RenewalNotes != "" {
		existing.RenewalNotes = payload.RenewalNotes
	}
	existing.ContractType = contract.DeriveType(existing.EndDate)

	if err := h.Store.Update(r.Context(), contractID, *existing); err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_update_failed", "failed to update contract", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": contractID}, middleware.GetRequestID(r.Context()))
}

type renewRequest struct {
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	DurationMonths *int     `json:"durationMonths"`
	Salary         *float64 `json:"salary"`
	RenewalNotes   string   `json:"renewalNotes"`
}

func (h *Handler) handleRenew(w http.ResponseWriter, r *http.Request) {
	var payload renewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("startDate", payload.StartDate, "start date is required")
	startDate, _ := v.Date("startDate", payload.StartDate)
	endDate := resolveEndDate(v, payload.EndDate, payload.DurationMonths, startDate)
	if endDate != nil {
		v.DateOrder("startDate", startDate, "endDate", *endDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	next, err := h.Store.Renew(r.Context(), chi.URLParam(r, "contractID"), contract.Renewal{
		StartDate:      startDate,
		EndDate:        endDate,
		DurationMonths: payload.DurationMonths,
		Salary:         payload.Salary,
		RenewalNotes:   payload.RenewalNotes,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			api.Fail(w, http.StatusConflict, "contract_exists", "contract number already exists", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusNotFound, "not_found", "contract not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, next, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractID")
	if err := h.Store.Delete(r.Context(), contractID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "contract not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": contractID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAll(r.Context()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_delete_failed", "failed to delete contracts", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
