package reportshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/reports"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/api"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleDashboard)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/urgent-probations", h.handleUrgentProbations)
		r.Get("/urgent-contracts", h.handleUrgentContracts)
		r.Get("/expiring-contracts.pdf", h.handleExpiringContractsPDF)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Dashboard(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to load dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUrgentProbations(w http.ResponseWriter, r *http.Request) {
	probations, err := h.Service.UrgentProbations(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to load urgent probations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, probations, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUrgentContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Service.UrgentContracts(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to load urgent contracts", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, contracts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExpiringContractsPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Service.ExpiringContractsPDF(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="expiring-contracts.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}
