package middleware

import (
	"context"
	"net/http"
	"strings"

	"staffpanel/internal/domain/auth"
)

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// SessionValidator reports whether the session backing a token is still
// live. A nil validator skips the check.
type SessionValidator interface {
	SessionValid(ctx context.Context, userID, tokenHash string) (bool, error)
}

// Authenticate resolves a bearer token into a Principal on the request
// context. Requests without a valid token continue anonymously; the
// authorization layer decides what anonymous callers may do.
func Authenticate(secret string, sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if sessions != nil && claims.SessionID != "" {
				valid, err := sessions.SessionValid(r.Context(), claims.UserID, auth.HashToken(claims.SessionID))
				if err != nil || !valid {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxKeyPrincipal, &auth.Principal{
				UserID:    claims.UserID,
				Email:     claims.Email,
				RoleID:    claims.RoleID,
				Superuser: claims.Superuser,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal returns the authenticated caller, or nil for anonymous
// requests.
func GetPrincipal(ctx context.Context) *auth.Principal {
	if p, ok := ctx.Value(ctxKeyPrincipal).(*auth.Principal); ok {
		return p
	}
	return nil
}
