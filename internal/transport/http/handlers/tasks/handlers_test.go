package taskshandler

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
	"staffpanel/internal/domain/tasks"
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
	created     int
	submissions int
}

func (s *stubStore) ListAll(ctx context.Context) ([]tasks.Task, error) { return nil, nil }

func (s *stubStore) ListFor(ctx context.Context, employeeID string) ([]tasks.Task, error) {
	return nil, nil
}

func (s *stubStore) Get(ctx context.Context, taskID string) (*tasks.Task, error) {
	return nil, errors.New("no rows")
}

func (s *stubStore) Create(ctx context.Context, creatorID string, input tasks.TaskInput, calendarEventID string) (string, error) {
	s.created++
	return "new-id", nil
}

func (s *stubStore) Update(ctx context.Context, taskID string, input tasks.TaskInput) (bool, error) {
	return false, nil
}

func (s *stubStore) Delete(ctx context.Context, taskID string) error { return nil }

func (s *stubStore) CreateSubmission(ctx context.Context, taskID, authorID string, input tasks.SubmissionInput) (string, error) {
	s.submissions++
	return "sub-id", nil
}

func (s *stubStore) UpdateSubmissionStatus(ctx context.Context, submissionID, status string) (bool, error) {
	return false, nil
}

func (s *stubStore) AssigneeEmail(ctx context.Context, employeeID string) (string, error) {
	return "", errors.New("no rows")
}

func (s *stubStore) EmployeeIDForUser(ctx context.Context, userID string) (string, error) {
	return "", errors.New("no rows")
}

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

func newRouter(store tasks.StoreAPI, bits auth.Bits) http.Handler {
	checker := auth.NewChecker(&stubPerms{bits: bits})
	h := NewHandler(tasks.NewService(store, checker, nil, nil))
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

func TestCreateNeedsEmployeesRead(t *testing.T) {
	store := &stubStore{}
	router := newRouter(store, bitsFor(t, "TASKS_CREATE"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/tasks/", `{}`))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Message != auth.MsgMissingPermissions {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if store.created != 0 {
		t.Fatal("create must not reach the store")
	}
}

func TestCreateBothFlagsPassTheGuard(t *testing.T) {
	router := newRouter(&stubStore{}, bitsFor(t, "EMPLOYEES_READ", "TASKS_CREATE"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/tasks/", `{}`))

	// Past the guard the empty payload fails validation, not authz.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitNeedsTasksView(t *testing.T) {
	store := &stubStore{}
	router := newRouter(store, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/tasks/t1/submissions", `{"note":"done"}`))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a viewless caller, got %d", rec.Code)
	}
	if store.submissions != 0 {
		t.Fatal("submission must not reach the store")
	}
}

func TestSubmitViewHolderPassesTheGuard(t *testing.T) {
	router := newRouter(&stubStore{}, bitsFor(t, "TASKS_VIEW"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/tasks/t1/submissions", `{}`))

	// Empty note is rejected by the service, proving the guard let the
	// request through.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
