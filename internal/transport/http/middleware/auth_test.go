package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staffpanel/internal/domain/auth"
)

type stubSessions struct {
	valid bool
	err   error
}

func (s *stubSessions) SessionValid(ctx context.Context, userID, tokenHash string) (bool, error) {
	return s.valid, s.err
}

func TestAuthenticateSetsPrincipal(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", Email: "u1@example.com", RoleID: "r1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Authenticate(secret, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := GetPrincipal(r.Context())
		if p == nil {
			t.Fatal("expected principal in context")
		}
		if p.UserID != "u1" || p.RoleID != "r1" {
			t.Fatalf("unexpected principal: %+v", p)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthenticateMissingTokenStaysAnonymous(t *testing.T) {
	handler := Authenticate("secret", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetPrincipal(r.Context()) != nil {
			t.Fatal("did not expect principal in context")
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAuthenticateRejectsRevokedSession(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", SessionID: "s1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Authenticate(secret, &stubSessions{valid: false})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetPrincipal(r.Context()) != nil {
			t.Fatal("revoked session must not yield a principal")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthenticateBadTokenStaysAnonymous(t *testing.T) {
	handler := Authenticate("secret", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetPrincipal(r.Context()) != nil {
			t.Fatal("did not expect principal for garbage token")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
