package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"staffpanel/internal/domain/employees"
	"staffpanel/internal/domain/roles"
)

type stubRoles struct {
	roles []roles.Role
	err   error
}

func (s *stubRoles) List(ctx context.Context) ([]roles.Role, error) { return s.roles, s.err }

type stubEmployees struct {
	list []employees.Employee
	err  error
}

func (s *stubEmployees) List(ctx context.Context) ([]employees.Employee, error) {
	return s.list, s.err
}

func TestRoleMatrixProducesPdf(t *testing.T) {
	svc := NewService(&stubRoles{roles: []roles.Role{
		{ID: "r1", Name: "ADMIN", Index: 0, Permissions: 7},
		{ID: "r2", Name: "STAFF", Index: 1, Permissions: 0},
	}}, &stubEmployees{})

	out, err := svc.RoleMatrix(context.Background())
	if err != nil {
		t.Fatalf("RoleMatrix: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF output, got %q", out[:min(8, len(out))])
	}
}

func TestRoleMatrixPropagatesStoreError(t *testing.T) {
	svc := NewService(&stubRoles{err: errors.New("db down")}, &stubEmployees{})
	if _, err := svc.RoleMatrix(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestDirectoryRedactsSensitiveFields(t *testing.T) {
	salary := 120000.0
	svc := NewService(&stubRoles{}, &stubEmployees{list: []employees.Employee{
		{
			EmployeeNumber: "E-001",
			FirstName:      "Ada",
			LastName:       "Mensah",
			Title:          "Engineer",
			Email:          "ada@example.com",
			Salary:         &salary,
			BankAccount:    "123456789",
		},
	}})

	out, err := svc.Directory(context.Background(), employees.ViewContact)
	if err != nil {
		t.Fatalf("Directory: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("expected PDF output")
	}
}
