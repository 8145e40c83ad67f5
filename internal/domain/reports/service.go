package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/domain/employees"
	"staffpanel/internal/domain/roles"
)

type RoleLister interface {
	List(ctx context.Context) ([]roles.Role, error)
}

type EmployeeLister interface {
	List(ctx context.Context) ([]employees.Employee, error)
}

type Service struct {
	Roles     RoleLister
	Employees EmployeeLister
}

func NewService(roleStore RoleLister, employeeStore EmployeeLister) *Service {
	return &Service{Roles: roleStore, Employees: employeeStore}
}

// RoleMatrix renders every role against the permission catalog, one block
// per role listing its granted permission names.
func (s *Service) RoleMatrix(ctx context.Context) ([]byte, error) {
	list, err := s.Roles.List(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Role Permission Matrix")
	pdf.Ln(12)

	for _, role := range list {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%s (index %d, value %d)", role.Name, role.Index, role.Permissions))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 10)
		names := auth.SetFromBits(auth.Bits(role.Permissions)).Names()
		if len(names) == 0 {
			pdf.Cell(0, 6, "no permissions")
			pdf.Ln(6)
		}
		for _, name := range names {
			pdf.Cell(0, 6, "- "+name)
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Directory renders the employee contact directory, redacted to the view
// the caller's permission tier grants.
func (s *Service) Directory(ctx context.Context, view employees.View) ([]byte, error) {
	list, err := s.Employees.List(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Directory")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	for i := range list {
		employees.RedactForView(&list[i], view)
		emp := list[i]
		pdf.Cell(0, 6, fmt.Sprintf("%s  %s %s  %s  %s", emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.Title, emp.Email))
		pdf.Ln(6)
		if emp.Status != "" {
			pdf.Cell(0, 6, fmt.Sprintf("    %s, %s, %s", emp.Department, emp.Status, emp.Location))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
