package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/domain/employees"
	"staffpanel/internal/domain/reports"
	"staffpanel/internal/platform/requestctx"
	"staffpanel/internal/transport/http/api"
	"staffpanel/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
	Checker *auth.Checker
}

func NewHandler(service *reports.Service, checker *auth.Checker) *Handler {
	return &Handler{Service: service, Checker: checker}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.Require(h.Checker, auth.PermRolesRead)).Get("/role-matrix", h.HandleRoleMatrix)
		r.With(middleware.Require(h.Checker, auth.PermEmployeesRead)).Get("/directory", h.HandleDirectory)
	})
}

// HandleRoleMatrix streams the role permission matrix as a PDF.
func (h *Handler) HandleRoleMatrix(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Service.RoleMatrix(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", requestctx.GetRequestID(r.Context()))
		return
	}
	writePDF(w, "role-matrix.pdf", pdf)
}

// HandleDirectory streams the employee directory, redacted to the widest
// view the caller's permissions grant.
func (h *Handler) HandleDirectory(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	view := employees.ViewContact
	switch {
	case h.Checker.Allowed(r.Context(), principal, auth.PermEmployeesReadSensitive):
		view = employees.ViewSensitive
	case h.Checker.Allowed(r.Context(), principal, auth.PermEmployeesReadBasic):
		view = employees.ViewBasic
	}

	pdf, err := h.Service.Directory(r.Context(), view)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", requestctx.GetRequestID(r.Context()))
		return
	}
	writePDF(w, "employee-directory.pdf", pdf)
}

func writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
