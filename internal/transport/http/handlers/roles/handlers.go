package roleshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/domain/roles"
	"staffpanel/internal/platform/requestctx"
	"staffpanel/internal/transport/http/api"
	"staffpanel/internal/transport/http/middleware"
)

type Handler struct {
	Service *roles.Service
}

func NewHandler(service *roles.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, checker *auth.Checker) {
	r.Route("/roles", func(r chi.Router) {
		r.With(middleware.Require(checker, auth.PermRolesRead)).Get("/", h.HandleList)
		r.With(middleware.Require(checker, auth.PermRolesRead)).Get("/catalog", h.HandleCatalog)
		r.With(middleware.Require(checker, auth.PermRolesRead)).Get("/{id}", h.HandleGet)
		// Mutations require ROLES_READ alongside the write flag: a
		// writer who cannot read roles cannot safely edit them.
		r.With(middleware.Require(checker, auth.List{auth.PermRolesRead, auth.PermRolesCreate})).Post("/", h.HandleCreate)
		r.With(middleware.Require(checker, auth.List{auth.PermRolesRead, auth.PermRolesUpdate})).Put("/{id}", h.HandleUpdate)
		r.With(middleware.Require(checker, auth.List{auth.PermRolesRead, auth.PermRolesDelete})).Delete("/{id}", h.HandleDelete)
	})
}

// HandleCatalog exposes the permission catalog so clients can render
// role editors without hardcoding names or bit positions.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name  string `json:"name"`
		Value int64  `json:"value"`
	}
	out := make([]entry, 0, len(auth.FlagNames()))
	for _, name := range auth.FlagNames() {
		bits, _ := auth.FlagBits(name)
		out = append(out, entry{Name: name, Value: int64(bits)})
	}
	api.Success(w, out, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list roles", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	role, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "role not found", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, role, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input roles.RoleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	role, err := h.Service.Create(r.Context(), middleware.GetPrincipal(r.Context()), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, role, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input roles.RoleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	role, err := h.Service.Update(r.Context(), middleware.GetPrincipal(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, role, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), middleware.GetPrincipal(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestctx.GetRequestID(r.Context())
	switch {
	case errors.Is(err, roles.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "role not found", reqID)
	case errors.Is(err, roles.ErrRoleInUse):
		api.Fail(w, http.StatusConflict, "role_in_use", err.Error(), reqID)
	case errors.Is(err, roles.ErrOutsideHierarchy):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), reqID)
	case errors.Is(err, roles.ErrInvalidName), errors.Is(err, roles.ErrInvalidPermissions):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
