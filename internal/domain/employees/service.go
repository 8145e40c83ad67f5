package employees

import (
	"context"
	"errors"
	"strings"

	"staffpanel/internal/domain/auth"
)

var ErrInvalidInput = errors.New("invalid employee input")

type StoreAPI interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, employeeID string) (*Employee, error)
	GetByUserID(ctx context.Context, userID string) (*Employee, error)
	Create(ctx context.Context, input EmployeeInput) (string, error)
	Update(ctx context.Context, employeeID string, input EmployeeInput) (bool, error)
	Delete(ctx context.Context, employeeID string) error
}

type Service struct {
	Store   StoreAPI
	Checker *auth.Checker
}

func NewService(store StoreAPI, checker *auth.Checker) *Service {
	return &Service{Store: store, Checker: checker}
}

// listTiers orders the read tiers from widest grant to narrowest. The first
// tier the principal satisfies decides how much of each record survives
// redaction.
func (s *Service) listTiers() []auth.Tier[[]Employee] {
	fetch := func(view View) func(ctx context.Context) ([]Employee, error) {
		return func(ctx context.Context) ([]Employee, error) {
			list, err := s.Store.List(ctx)
			if err != nil {
				return nil, err
			}
			for i := range list {
				RedactForView(&list[i], view)
			}
			return list, nil
		}
	}
	return []auth.Tier[[]Employee]{
		{Required: auth.PermEmployeesReadSensitive, Fetch: fetch(ViewSensitive)},
		{Required: auth.PermEmployeesReadBasic, Fetch: fetch(ViewBasic)},
		{Required: auth.PermEmployeesRead, Fetch: fetch(ViewContact)},
	}
}

func (s *Service) List(ctx context.Context, principal *auth.Principal) ([]Employee, *auth.Denial) {
	return auth.ResolveTiered(ctx, s.Checker, principal, s.listTiers())
}

func (s *Service) Get(ctx context.Context, principal *auth.Principal, employeeID string) (*Employee, *auth.Denial) {
	fetch := func(view View) func(ctx context.Context) (*Employee, error) {
		return func(ctx context.Context) (*Employee, error) {
			emp, err := s.Store.Get(ctx, employeeID)
			if err != nil {
				return nil, err
			}
			RedactForView(emp, view)
			return emp, nil
		}
	}
	tiers := []auth.Tier[*Employee]{
		{Required: auth.PermEmployeesReadSensitive, Fetch: fetch(ViewSensitive)},
		{Required: auth.PermEmployeesReadBasic, Fetch: fetch(ViewBasic)},
		{Required: auth.PermEmployeesRead, Fetch: fetch(ViewContact)},
	}
	return auth.ResolveTiered(ctx, s.Checker, principal, tiers)
}

func (s *Service) Create(ctx context.Context, input EmployeeInput) (*Employee, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	id, err := s.Store.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, employeeID string, input EmployeeInput) (*Employee, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	updated, err := s.Store.Update(ctx, employeeID, input)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errors.New("employee not found")
	}
	return s.Store.Get(ctx, employeeID)
}

func (s *Service) Delete(ctx context.Context, employeeID string) error {
	return s.Store.Delete(ctx, employeeID)
}

func validate(input EmployeeInput) error {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(input.Email) == "" || !strings.Contains(input.Email, "@") {
		return ErrInvalidInput
	}
	return nil
}
