package importshandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/access"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/importer"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/api"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/middleware"
)

type Handler struct {
	Reconciler *importer.Reconciler
	Perms      *access.Store
	MaxBytes   int64
	MaxRows    int
}

func NewHandler(reconciler *importer.Reconciler, perms *access.Store, maxBytes int64, maxRows int) *Handler {
	return &Handler{Reconciler: reconciler, Perms: perms, MaxBytes: maxBytes, MaxRows: maxRows}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/import", func(r chi.Router) {
		r.With(middleware.RequireCapability(access.CapImportData, h.Perms)).Post("/", h.handleImport)
		r.Get("/template", h.handleTemplate)
	})
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "expected a multipart upload with a file field", middleware.GetRequestID(r.Context()))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "missing file field", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	rows, err := importer.ParseWorkbook(file, h.MaxRows)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_workbook", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	summary := h.Reconciler.Run(r.Context(), rows)
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	f, err := importer.Template()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_failed", "failed to build template", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="import-template.xlsx"`)
	if err := f.Write(w); err != nil {
		slog.Warn("template write failed", "err", err)
	}
}
