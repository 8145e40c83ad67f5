package taskshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/domain/tasks"
	"staffpanel/internal/platform/requestctx"
	"staffpanel/internal/transport/http/api"
	"staffpanel/internal/transport/http/middleware"
)

type Handler struct {
	Service *tasks.Service
}

func NewHandler(service *tasks.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, checker *auth.Checker) {
	r.Route("/tasks", func(r chi.Router) {
		// Listing is tiered inside the service. Creation also needs
		// EMPLOYEES_READ because it looks up the assignee's record.
		r.Get("/", h.HandleList)
		r.With(middleware.Require(checker, auth.PermTasksView)).Get("/{id}", h.HandleGet)
		r.With(middleware.Require(checker, auth.List{auth.PermEmployeesRead, auth.PermTasksCreate})).Post("/", h.HandleCreate)
		r.With(middleware.Require(checker, auth.PermTasksEdit)).Put("/{id}", h.HandleUpdate)
		r.With(middleware.Require(checker, auth.PermTasksDelete)).Delete("/{id}", h.HandleDelete)
		r.With(middleware.Require(checker, auth.PermTasksView)).Post("/{id}/submissions", h.HandleSubmit)
		r.With(middleware.Require(checker, auth.PermTasksEdit)).Put("/submissions/{submissionId}", h.HandleReviewSubmission)
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
	task, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "task not found", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, task, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input tasks.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	task, err := h.Service.Create(r.Context(), middleware.GetPrincipal(r.Context()), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, task, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input tasks.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	task, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, task, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}

// HandleSubmit records the assignee's work note against a task.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var input tasks.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	task, err := h.Service.Submit(r.Context(), middleware.GetPrincipal(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, task, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.ReviewSubmission(r.Context(), chi.URLParam(r, "submissionId"), payload.Status); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": payload.Status}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "task not found", reqID)
	case errors.Is(err, tasks.ErrNotAssignee):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), reqID)
	case errors.Is(err, tasks.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
