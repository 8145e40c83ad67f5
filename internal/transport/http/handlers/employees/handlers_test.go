package employeeshandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/domain/employees"
	"staffpanel/internal/transport/http/api"
	"staffpanel/internal/transport/http/middleware"
)

const testSecret = "route-test-secret"

type stubPerms struct {
	bits auth.Bits
}

func (s *stubPerms) RolePermissions(ctx context.Context, roleID string) (auth.Bits, error) {
	return s.bits, nil
}

type stubStore struct {
	updated int
}

func (s *stubStore) List(ctx context.Context) ([]employees.Employee, error) { return nil, nil }

func (s *stubStore) Get(ctx context.Context, employeeID string) (*employees.Employee, error) {
	return &employees.Employee{ID: employeeID}, nil
}

func (s *stubStore) GetByUserID(ctx context.Context, userID string) (*employees.Employee, error) {
	return nil, errors.New("no rows")
}

func (s *stubStore) Create(ctx context.Context, input employees.EmployeeInput) (string, error) {
	return "new-id", nil
}

func (s *stubStore) Update(ctx context.Context, employeeID string, input employees.EmployeeInput) (bool, error) {
	s.updated++
	return true, nil
}

func (s *stubStore) Delete(ctx context.Context, employeeID string) error { return nil }

func bitsFor(t *testing.T, names ...string) auth.Bits {
	t.Helper()
	var out auth.Bits
	for _, name := range names {
		bits, ok := auth.FlagBits(name)
		if !ok {
			t.Fatalf("unknown flag %s", name)
		}
		out |= bits
	}
	return out
}

func newRouter(store employees.StoreAPI, bits auth.Bits) http.Handler {
	checker := auth.NewChecker(&stubPerms{bits: bits})
	h := NewHandler(employees.NewService(store, checker))
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(testSecret, nil))
	h.RegisterRoutes(r, checker)
	return r
}

func authedRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", RoleID: "r1"}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var env api.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestUpdateNeedsSensitiveRead(t *testing.T) {
	store := &stubStore{}
	router := newRouter(store, bitsFor(t, "EMPLOYEES_UPDATE"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/employees/e1", `{"firstName":"Ana","lastName":"Silva","email":"ana@example.com"}`))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Message != auth.MsgMissingPermissions {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if store.updated != 0 {
		t.Fatal("update must not reach the store")
	}
}

func TestUpdateAllowedWithBothFlags(t *testing.T) {
	store := &stubStore{}
	router := newRouter(store, bitsFor(t, "EMPLOYEES_UPDATE", "EMPLOYEES_READ_SENSITIVE_INFO"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/employees/e1", `{"firstName":"Ana","lastName":"Silva","email":"ana@example.com"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.updated != 1 {
		t.Fatalf("expected 1 update, got %d", store.updated)
	}
}
