package roles

import (
	"context"
	"errors"
	"testing"

	"staffpanel/internal/domain/auth"
)

type stubStore struct {
	roles        map[string]*Role
	employeeRefs map[string]int
	userRefs     map[string]int
	next         int
	created      []Role
	updated      []Role
	deleted      []string
}

func newStubStore() *stubStore {
	return &stubStore{
		roles:        map[string]*Role{},
		employeeRefs: map[string]int{},
		userRefs:     map[string]int{},
	}
}

func (s *stubStore) List(ctx context.Context) ([]Role, error) { return nil, nil }

func (s *stubStore) Get(ctx context.Context, roleID string) (*Role, error) {
	role, ok := s.roles[roleID]
	if !ok {
		return nil, errors.New("no rows")
	}
	copied := *role
	return &copied, nil
}

func (s *stubStore) NextIndex(ctx context.Context) (int, error) { return s.next, nil }

func (s *stubStore) Create(ctx context.Context, role Role) (string, error) {
	s.created = append(s.created, role)
	return "new-id", nil
}

func (s *stubStore) Update(ctx context.Context, role Role) (bool, error) {
	s.updated = append(s.updated, role)
	_, ok := s.roles[role.ID]
	return ok, nil
}

func (s *stubStore) Delete(ctx context.Context, roleID string) error {
	s.deleted = append(s.deleted, roleID)
	return nil
}

func (s *stubStore) InUse(ctx context.Context, roleID string) (bool, error) {
	return s.employeeRefs[roleID] > 0 || s.userRefs[roleID] > 0, nil
}

func intPtr(v int) *int { return &v }

func TestCreateDefaultsIndexToNextSlot(t *testing.T) {
	store := newStubStore()
	store.next = 3
	svc := NewService(store)

	role, err := svc.Create(context.Background(), &auth.Principal{Superuser: true}, RoleInput{Name: "intern", Permissions: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if role.Index != 3 {
		t.Fatalf("expected index 3, got %d", role.Index)
	}
	if role.Name != "INTERN" {
		t.Fatalf("expected uppercased name, got %s", role.Name)
	}
}

func TestCreateRejectsStrayBits(t *testing.T) {
	svc := NewService(newStubStore())

	_, err := svc.Create(context.Background(), &auth.Principal{Superuser: true}, RoleInput{Name: "X", Permissions: 1 << 40})
	if !errors.Is(err, ErrInvalidPermissions) {
		t.Fatalf("expected ErrInvalidPermissions, got %v", err)
	}

	_, err = svc.Create(context.Background(), &auth.Principal{Superuser: true}, RoleInput{Name: "X", Permissions: -1})
	if !errors.Is(err, ErrInvalidPermissions) {
		t.Fatalf("expected ErrInvalidPermissions for negative value, got %v", err)
	}
}

func TestCreateEnforcesHierarchy(t *testing.T) {
	store := newStubStore()
	store.roles["mgr"] = &Role{ID: "mgr", Name: "MANAGER", Index: 2}
	svc := NewService(store)
	actor := &auth.Principal{UserID: "u1", RoleID: "mgr"}

	// Equal or more senior slots are off limits.
	if _, err := svc.Create(context.Background(), actor, RoleInput{Name: "PEER", Index: intPtr(2), Permissions: 0}); !errors.Is(err, ErrOutsideHierarchy) {
		t.Fatalf("expected hierarchy error for equal index, got %v", err)
	}
	if _, err := svc.Create(context.Background(), actor, RoleInput{Name: "BOSS", Index: intPtr(1), Permissions: 0}); !errors.Is(err, ErrOutsideHierarchy) {
		t.Fatalf("expected hierarchy error for senior index, got %v", err)
	}

	if _, err := svc.Create(context.Background(), actor, RoleInput{Name: "JUNIOR", Index: intPtr(3), Permissions: 0}); err != nil {
		t.Fatalf("junior slot should be allowed: %v", err)
	}
}

func TestUpdateChecksBothSlots(t *testing.T) {
	store := newStubStore()
	store.roles["mgr"] = &Role{ID: "mgr", Name: "MANAGER", Index: 2}
	store.roles["target"] = &Role{ID: "target", Name: "STAFF", Index: 5}
	svc := NewService(store)
	actor := &auth.Principal{UserID: "u1", RoleID: "mgr"}

	// Moving a junior role into a senior slot is rejected.
	if _, err := svc.Update(context.Background(), actor, "target", RoleInput{Name: "STAFF", Index: intPtr(1), Permissions: 0}); !errors.Is(err, ErrOutsideHierarchy) {
		t.Fatalf("expected hierarchy error, got %v", err)
	}

	role, err := svc.Update(context.Background(), actor, "target", RoleInput{Name: "staff", Index: intPtr(6), Permissions: 7})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if role.Index != 6 || role.Permissions != 7 {
		t.Fatalf("unexpected role after update: %+v", role)
	}
}

func TestDeleteRestrictsWhenAssigned(t *testing.T) {
	store := newStubStore()
	store.roles["target"] = &Role{ID: "target", Name: "STAFF", Index: 5}
	store.userRefs["target"] = 1
	svc := NewService(store)

	err := svc.Delete(context.Background(), &auth.Principal{Superuser: true}, "target")
	if !errors.Is(err, ErrRoleInUse) {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatal("delete must not reach the store")
	}

	store.userRefs["target"] = 0
	if err := svc.Delete(context.Background(), &auth.Principal{Superuser: true}, "target"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestDeleteRestrictsForAccountlessEmployees(t *testing.T) {
	// Employees without login accounts still hold the role.
	store := newStubStore()
	store.roles["target"] = &Role{ID: "target", Name: "STAFF", Index: 5}
	store.employeeRefs["target"] = 2
	svc := NewService(store)

	err := svc.Delete(context.Background(), &auth.Principal{Superuser: true}, "target")
	if !errors.Is(err, ErrRoleInUse) {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatal("delete must not reach the store")
	}
}

func TestDeleteUnknownRole(t *testing.T) {
	svc := NewService(newStubStore())
	if err := svc.Delete(context.Background(), &auth.Principal{Superuser: true}, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
