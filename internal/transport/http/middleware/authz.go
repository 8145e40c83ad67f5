package middleware

import (
	"net/http"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/transport/http/api"
)

// Require guards a route with a permission check. The role's permission
// integer is re-read from storage on every request, so edits to a role
// take effect immediately.
func Require(checker *auth.Checker, required auth.Resolvable) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			denial := checker.Check(r.Context(), GetPrincipal(r.Context()), required)
			if denial != nil {
				api.FailDenial(w, denial, GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
