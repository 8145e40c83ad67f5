package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/domain/employees"
	"staffpanel/internal/platform/requestctx"
	"staffpanel/internal/transport/http/api"
	"staffpanel/internal/transport/http/middleware"
)

type Handler struct {
	Service *employees.Service
}

func NewHandler(service *employees.Service) *Handler {
	return &Handler{Service: service}
}

// Reads are left unguarded here: the service resolves the caller's read
// tier itself and produces the denial when no tier matches.
func (h *Handler) RegisterRoutes(r chi.Router, checker *auth.Checker) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.With(middleware.Require(checker, auth.PermEmployeesCreate)).Post("/", h.HandleCreate)
		// Updates touch the sensitive field group, so the caller must
		// hold the sensitive read tier as well.
		r.With(middleware.Require(checker, auth.List{auth.PermEmployeesUpdate, auth.PermEmployeesReadSensitive})).Put("/{id}", h.HandleUpdate)
		r.With(middleware.Require(checker, auth.PermEmployeesDelete)).Delete("/{id}", h.HandleDelete)
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, denial := h.Service.List(r.Context(), middleware.GetPrincipal(r.Context()))
	if denial != nil {
		api.FailDenial(w, denial, requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	emp, denial := h.Service.Get(r.Context(), middleware.GetPrincipal(r.Context()), chi.URLParam(r, "id"))
	if denial != nil {
		api.FailDenial(w, denial, requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input employees.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.Create(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input employees.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete employee", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())
	if errors.Is(err, employees.ErrInvalidInput) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), reqID)
		return
	}
	api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
}
