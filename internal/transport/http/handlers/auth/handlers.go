package authhandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/platform/requestctx"
	"staffpanel/internal/transport/http/api"
	"staffpanel/internal/transport/http/middleware"
)

// UserSource is the slice of the auth store the handler needs.
type UserSource interface {
	FindActiveUserByEmail(ctx context.Context, email string) (auth.AuthUser, error)
	CreateSession(ctx context.Context, userID, tokenHash string, expires time.Time) error
	RevokeSession(ctx context.Context, userID, tokenHash string) error
	UpdateLastLogin(ctx context.Context, userID string) error
	RolePermissions(ctx context.Context, roleID string) (auth.Bits, error)
}

type Handler struct {
	Store    UserSource
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(store UserSource, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	user, err := h.Store.FindActiveUserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(user.Password, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	sessionID, err := auth.NewSessionID()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}
	expires := time.Now().Add(h.TokenTTL)
	if err := h.Store.CreateSession(r.Context(), user.ID, auth.HashToken(sessionID), expires); err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		RoleID:    user.RoleID,
		Superuser: user.Superuser,
		SessionID: sessionID,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpdateLastLogin(r.Context(), user.ID); err != nil {
		slog.Warn("update last_login failed", "userId", user.ID, "err", err)
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":        user.ID,
			"email":     user.Email,
			"roleId":    user.RoleID,
			"superuser": user.Superuser,
		},
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	if p == nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", auth.MsgLoginRequired, requestctx.GetRequestID(r.Context()))
		return
	}

	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 {
		raw := authHeader[7:]
		if claims, err := auth.ParseToken(h.Secret, raw); err == nil && claims.SessionID != "" {
			if err := h.Store.RevokeSession(r.Context(), p.UserID, auth.HashToken(claims.SessionID)); err != nil {
				slog.Warn("logout session revoke failed", "userId", p.UserID, "err", err)
			}
		}
	}
	api.Success(w, map[string]string{"status": "logged_out"}, requestctx.GetRequestID(r.Context()))
}

// HandleMe returns the caller's identity plus the resolved permission
// names for their role, freshly read from storage.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	if p == nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", auth.MsgLoginRequired, requestctx.GetRequestID(r.Context()))
		return
	}

	permissions := []string{}
	if p.Superuser {
		permissions = auth.FlagNames()
	} else if p.RoleID != "" {
		bits, err := h.Store.RolePermissions(r.Context(), p.RoleID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "permission_error", auth.MsgCheckFailed, requestctx.GetRequestID(r.Context()))
			return
		}
		permissions = auth.SetFromBits(bits).Names()
	}

	api.Success(w, map[string]any{
		"id":          p.UserID,
		"email":       p.Email,
		"roleId":      p.RoleID,
		"superuser":   p.Superuser,
		"permissions": permissions,
	}, requestctx.GetRequestID(r.Context()))
}
