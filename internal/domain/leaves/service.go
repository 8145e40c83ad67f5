package leaves

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"staffpanel/internal/domain/auth"
)

var (
	ErrLeaveNotFound     = errors.New("leave not found")
	ErrInvalidInput      = errors.New("invalid leave input")
	ErrInvalidTransition = errors.New("leave already decided")
)

type StoreAPI interface {
	List(ctx context.Context) ([]Leave, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	Get(ctx context.Context, leaveID string) (*Leave, error)
	Create(ctx context.Context, creatorID string, input LeaveInput, days float64) (string, error)
	UpdateStatus(ctx context.Context, leaveID, status, modifierID string) (bool, error)
	Delete(ctx context.Context, leaveID string) error
	EmployeeEmail(ctx context.Context, employeeID string) (string, error)
	EmployeeIDForUser(ctx context.Context, userID string) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	Store   StoreAPI
	Checker *auth.Checker
	Mailer  Mailer
}

func NewService(store StoreAPI, checker *auth.Checker, mailer Mailer) *Service {
	return &Service{Store: store, Checker: checker, Mailer: mailer}
}

// List serves the whole calendar to EMPLOYEES_READ holders and falls back to
// the caller's own requests. The fallback tier carries no requirement, so
// any authenticated principal sees their own leave.
func (s *Service) List(ctx context.Context, principal *auth.Principal) ([]Leave, *auth.Denial) {
	tiers := []auth.Tier[[]Leave]{
		{Required: auth.PermEmployeesRead, Fetch: s.Store.List},
		{Required: nil, Fetch: func(ctx context.Context) ([]Leave, error) {
			employeeID, err := s.Store.EmployeeIDForUser(ctx, principal.UserID)
			if err != nil {
				return nil, err
			}
			return s.Store.ListForEmployee(ctx, employeeID)
		}},
	}
	return auth.ResolveTiered(ctx, s.Checker, principal, tiers)
}

// Create files a leave request. Anyone can request leave for themselves;
// filing for another employee requires EMPLOYEES_UPDATE.
func (s *Service) Create(ctx context.Context, principal *auth.Principal, input LeaveInput) (*Leave, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, ErrInvalidInput
	}
	days, err := CalculateDays(input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	creatorID, err := s.Store.EmployeeIDForUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve creator: %w", err)
	}

	if input.EmployeeID == "" {
		input.EmployeeID = creatorID
	}
	if input.EmployeeID != creatorID {
		if denial := s.Checker.Check(ctx, principal, auth.PermEmployeesUpdate); denial != nil {
			return nil, fmt.Errorf("%w: filing for another employee", ErrInvalidInput)
		}
	}

	id, err := s.Store.Create(ctx, creatorID, input, days)
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

// Decide approves or rejects a pending request and notifies the employee.
func (s *Service) Decide(ctx context.Context, principal *auth.Principal, leaveID, status string) (*Leave, error) {
	leave, err := s.Store.Get(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(leave.Status, status) {
		return nil, ErrInvalidTransition
	}

	modifierID, err := s.Store.EmployeeIDForUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve modifier: %w", err)
	}

	updated, err := s.Store.UpdateStatus(ctx, leaveID, status, modifierID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrLeaveNotFound
	}

	s.notifyDecision(ctx, leave, status)

	return s.Store.Get(ctx, leaveID)
}

func (s *Service) Delete(ctx context.Context, leaveID string) error {
	if _, err := s.Store.Get(ctx, leaveID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, leaveID)
}

func (s *Service) notifyDecision(ctx context.Context, leave *Leave, status string) {
	if s.Mailer == nil {
		return
	}
	to, err := s.Store.EmployeeEmail(ctx, leave.EmployeeID)
	if err != nil || to == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		body := fmt.Sprintf(
			"Your leave request (%s, %s to %s) has been %s.\n",
			leave.Type, leave.StartDate.Format("2006-01-02"), leave.EndDate.Format("2006-01-02"), status,
		)
		if err := s.Mailer.Send(ctx, to, "Leave Request "+strings.ToUpper(status[:1])+status[1:], body); err != nil {
			slog.Warn("leave decision email failed", "to", to, "err", err)
		}
	}()
}
