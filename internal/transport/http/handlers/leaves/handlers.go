package leaveshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/domain/leaves"
	"staffpanel/internal/platform/requestctx"
	"staffpanel/internal/transport/http/api"
	"staffpanel/internal/transport/http/middleware"
)

type Handler struct {
	Service *leaves.Service
}

func NewHandler(service *leaves.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, checker *auth.Checker) {
	r.Route("/leaves", func(r chi.Router) {
		// Listing and filing are self-service; the service widens or
		// narrows scope from the caller's permissions.
		r.Get("/", h.HandleList)
		r.With(middleware.Require(checker, nil)).Post("/", h.HandleCreate)
		r.With(middleware.Require(checker, auth.PermEmployeesUpdate)).Put("/{id}/approve", h.HandleApprove)
		r.With(middleware.Require(checker, auth.PermEmployeesUpdate)).Put("/{id}/reject", h.HandleReject)
		r.With(middleware.Require(checker, auth.PermEmployeesUpdate)).Delete("/{id}", h.HandleDelete)
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

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input leaves.LeaveInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	leave, err := h.Service.Create(r.Context(), middleware.GetPrincipal(r.Context()), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, leave, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leaves.StatusApproved)
}

func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leaves.StatusRejected)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, status string) {
	leave, err := h.Service.Decide(r.Context(), middleware.GetPrincipal(r.Context()), chi.URLParam(r, "id"), status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, leave, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leaves.ErrLeaveNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave not found", reqID)
	case errors.Is(err, leaves.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", err.Error(), reqID)
	case errors.Is(err, leaves.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
