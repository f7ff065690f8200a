package probationshandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/access"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/expiry"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/probation"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/api"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/middleware"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/shared"
)

type Handler struct {
	Store *probation.Store
	Perms *access.Store
}

func NewHandler(store *probation.Store, perms *access.Store) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/probations", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireCapability(access.CapAddProbations, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Delete("/", h.handleDeleteAll)
		r.Route("/{probationID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.With(middleware.RequireCapability(access.CapAddProbations, h.Perms)).Put("/", h.handleUpdate)
			r.With(middleware.RequireCapability(access.CapEvaluateProbations, h.Perms)).Post("/evaluate", h.handleEvaluate)
			r.With(middleware.RequireCapability(access.CapDeleteProbations, h.Perms)).Delete("/", h.handleDelete)
		})
	})
}

// listItem decorates a probation period with where it stands relative
// to today.
type listItem struct {
	probation.ProbationPeriod
	Urgency       expiry.Bucket `json:"urgency"`
	DaysRemaining int           `json:"daysRemaining"`
	ExpiringSoon  bool          `json:"expiringSoon"`
}

func decorate(p probation.ProbationPeriod, today time.Time) listItem {
	end := p.EndDate
	bucket, days := expiry.Classify(&end, today, expiry.ProbationThresholds)
	return listItem{
		ProbationPeriod: p,
		Urgency:         bucket,
		DaysRemaining:   days,
		ExpiringSoon:    p.Status == probation.StatusActive && expiry.ExpiringSoon(&end, today),
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

	periods, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "probation_list_failed", "failed to list probation periods", middleware.GetRequestID(r.Context()))
		return
	}

	today := time.Now()
	items := make([]listItem, 0, len(periods))
	for _, p := range periods {
		if !scope.AllowsDepartment(p.Department) {
			continue
		}
		items = append(items, decorate(p, today))
	}
	lo, hi := shared.ParsePagination(r, 0, 500).Window(len(items))
	api.Success(w, items[lo:hi], middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.Get(r.Context(), chi.URLParam(r, "probationID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "probation period not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, decorate(*p, time.Now()), middleware.GetRequestID(r.Context()))
}

// probationRequest carries the caller-editable fields. Status is
// absent on purpose: a period starts active and only the evaluate
// action moves it out of that state.
type probationRequest struct {
	EmployeeID     string `json:"employeeId"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	DurationMonths int    `json:"durationMonths"`
	Notes          string `json:"notes"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload probationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("startDate", payload.StartDate, "start date is required")
	if payload.DurationMonths < 0 {
		v.Add("durationMonths", "must be a positive number of months")
	}
	startDate, _ := v.Date("startDate", payload.StartDate)

	months := payload.DurationMonths
	if months == 0 {
		months = probation.DefaultMonths
	}
	endDate := probation.EndDateFor(startDate, months)
	if payload.EndDate != "" {
		if parsed, ok := v.Date("endDate", payload.EndDate); ok {
			endDate = parsed
		}
	}
	if !startDate.IsZero() && !probation.ValidateWindow(startDate, endDate) {
		v.Add("endDate", "must be after the start date")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.Create(r.Context(), probation.ProbationPeriod{
		EmployeeID:     payload.EmployeeID,
		StartDate:      startDate,
		EndDate:        endDate,
		DurationMonths: months,
		Status:         probation.StatusActive,
		Notes:          payload.Notes,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "probation_create_failed", "failed to create probation period", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	probationID := chi.URLParam(r, "probationID")
	existing, err := h.Store.Get(r.Context(), probationID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "probation period not found", middleware.GetRequestID(r.Context()))
		return
	}

	var payload probationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.StartDate != "" {
		if parsed, ok := v.Date("startDate", payload.StartDate); ok {
			existing.StartDate = parsed
		}
	}
	if payload.EndDate != "" {
		if parsed, ok := v.Date("endDate", payload.EndDate); ok {
			existing.EndDate = parsed
		}
	}
	if payload.DurationMonths < 0 {
		v.Add("durationMonths", "must be a positive number of months")
	} else if payload.DurationMonths > 0 {
		existing.DurationMonths = payload.DurationMonths
	}
	if !probation.ValidateWindow(existing.StartDate, existing.EndDate) {
		v.Add("endDate", "must be after the start date")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if payload.Notes != "" {
		existing.Notes = payload.Notes
	}

	if err := h.Store.Update(r.Context(), probationID, *existing); err != nil {
		api.Fail(w, http.StatusInternalServerError, "probation_update_failed", "failed to update probation period", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": probationID}, middleware.GetRequestID(r.Context()))
}

type evaluateRequest struct {
	Status               string `json:"status"`
	TaskPerformance      string `json:"taskPerformance"`
	TaskCompletionRate   *int   `json:"taskCompletionRate"`
	TaskNotes            string `json:"taskNotes"`
	DepartmentEvaluation string `json:"departmentEvaluation"`
	SupervisorEvaluation string `json:"supervisorEvaluation"`
	EvaluationNotes      string `json:"evaluationNotes"`
	EvaluationDate       string `json:"evaluationDate"`
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "an evaluation outcome is required")
	v.Enum("status", payload.Status, probation.Outcomes, "outcome must be passed, extended or failed")
	if payload.TaskCompletionRate != nil && (*payload.TaskCompletionRate < 0 || *payload.TaskCompletionRate > 100) {
		v.Add("taskCompletionRate", "must be between 0 and 100")
	}
	evaluationDate := time.Now()
	if payload.EvaluationDate != "" {
		if parsed, ok := v.Date("evaluationDate", payload.EvaluationDate); ok {
			evaluationDate = parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	probationID := chi.URLParam(r, "probationID")
	err := h.Store.Evaluate(r.Context(), probationID, probation.Evaluation{
		Status:               payload.Status,
		TaskPerformance:      payload.TaskPerformance,
		TaskCompletionRate:   payload.TaskCompletionRate,
		TaskNotes:            payload.TaskNotes,
		DepartmentEvaluation: payload.DepartmentEvaluation,
		SupervisorEvaluation: payload.SupervisorEvaluation,
		EvaluationNotes:      payload.EvaluationNotes,
		EvaluatedBy:          user.Name,
		EvaluationDate:       &evaluationDate,
	})
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "probation period not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": probationID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	probationID := chi.URLParam(r, "probationID")
	if err := h.Store.Delete(r.Context(), probationID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "probation period not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": probationID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAll(r.Context()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "probation_delete_failed", "failed to delete probation periods", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
