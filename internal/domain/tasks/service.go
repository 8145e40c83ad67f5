package tasks

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
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid task input")
	ErrNotAssignee  = errors.New("only the assignee can submit work")
)

type StoreAPI interface {
	ListAll(ctx context.Context) ([]Task, error)
	ListFor(ctx context.Context, employeeID string) ([]Task, error)
	Get(ctx context.Context, taskID string) (*Task, error)
	Create(ctx context.Context, creatorID string, input TaskInput, calendarEventID string) (string, error)
	Update(ctx context.Context, taskID string, input TaskInput) (bool, error)
	Delete(ctx context.Context, taskID string) error
	CreateSubmission(ctx context.Context, taskID, authorID string, input SubmissionInput) (string, error)
	UpdateSubmissionStatus(ctx context.Context, submissionID, status string) (bool, error)
	AssigneeEmail(ctx context.Context, employeeID string) (string, error)
	EmployeeIDForUser(ctx context.Context, userID string) (string, error)
}

// Mailer delivers assignment notifications. Failures are logged, never
// surfaced to the caller.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Calendar mirrors tasks into an external calendar. Same best-effort
// contract as Mailer.
type Calendar interface {
	CreateEvent(ctx context.Context, title, description string, start, end time.Time, attendee string) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

type Service struct {
	Store    StoreAPI
	Checker  *auth.Checker
	Mailer   Mailer
	Calendar Calendar
}

func NewService(store StoreAPI, checker *auth.Checker, mailer Mailer, calendar Calendar) *Service {
	return &Service{Store: store, Checker: checker, Mailer: mailer, Calendar: calendar}
}

// List serves the broad tier (every task) to TASKS_VIEW_ALL holders and the
// scoped tier (assigned to or created by the caller) to TASKS_VIEW holders.
func (s *Service) List(ctx context.Context, principal *auth.Principal) ([]Task, *auth.Denial) {
	tiers := []auth.Tier[[]Task]{
		{Required: auth.PermTasksViewAll, Fetch: s.Store.ListAll},
		{Required: auth.PermTasksView, Fetch: func(ctx context.Context) ([]Task, error) {
			employeeID, err := s.Store.EmployeeIDForUser(ctx, principal.UserID)
			if err != nil {
				return nil, err
			}
			return s.Store.ListFor(ctx, employeeID)
		}},
	}
	return auth.ResolveTiered(ctx, s.Checker, principal, tiers)
}

func (s *Service) Get(ctx context.Context, taskID string) (*Task, error) {
	return s.Store.Get(ctx, taskID)
}

func (s *Service) Create(ctx context.Context, principal *auth.Principal, input TaskInput) (*Task, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	creatorID, err := s.Store.EmployeeIDForUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve creator: %w", err)
	}

	assigneeEmail, err := s.Store.AssigneeEmail(ctx, input.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("resolve assignee: %w", err)
	}

	// The calendar event is created up front so its id lands on the row;
	// its failure does not block the task.
	eventID := ""
	if s.Calendar != nil {
		eventID, err = s.Calendar.CreateEvent(ctx, input.Name, input.Description, input.Start, input.End, assigneeEmail)
		if err != nil {
			slog.Warn("calendar event creation failed", "task", input.Name, "err", err)
			eventID = ""
		}
	}

	id, err := s.Store.Create(ctx, creatorID, input, eventID)
	if err != nil {
		return nil, err
	}

	s.notifyAssignment(assigneeEmail, input)

	return s.Store.Get(ctx, id)
}

// notifyAssignment sends the assignment email without holding up the
// request. The fresh context outlives the request on purpose.
func (s *Service) notifyAssignment(to string, input TaskInput) {
	if s.Mailer == nil || to == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		body := fmt.Sprintf(
			"A new task has been assigned to you.\n\nProject: %s\nTask: %s\nSummary: %s\nStarts: %s\nDue: %s\n",
			input.Project, input.Name, input.Summary,
			input.Start.Format("2006-01-02"), input.End.Format("2006-01-02"),
		)
		if err := s.Mailer.Send(ctx, to, "New Task Has Been Assigned", body); err != nil {
			slog.Warn("task assignment email failed", "to", to, "err", err)
		}
	}()
}

func (s *Service) Update(ctx context.Context, taskID string, input TaskInput) (*Task, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	updated, err := s.Store.Update(ctx, taskID, input)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrTaskNotFound
	}
	return s.Store.Get(ctx, taskID)
}

func (s *Service) Delete(ctx context.Context, taskID string) error {
	task, err := s.Store.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, taskID); err != nil {
		return err
	}
	if s.Calendar != nil && task.CalendarEventID != "" {
		if err := s.Calendar.DeleteEvent(ctx, task.CalendarEventID); err != nil {
			slog.Warn("calendar event cleanup failed", "eventId", task.CalendarEventID, "err", err)
		}
	}
	return nil
}

// Submit records the assignee's work against a task.
func (s *Service) Submit(ctx context.Context, principal *auth.Principal, taskID string, input SubmissionInput) (*Task, error) {
	if strings.TrimSpace(input.Note) == "" {
		return nil, ErrInvalidInput
	}

	task, err := s.Store.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	authorID, err := s.Store.EmployeeIDForUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	if !principal.Superuser && task.AssigneeID != authorID {
		return nil, ErrNotAssignee
	}

	if _, err := s.Store.CreateSubmission(ctx, taskID, authorID, input); err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, taskID)
}

// ReviewSubmission accepts or rejects a submission.
func (s *Service) ReviewSubmission(ctx context.Context, submissionID, status string) error {
	if status != SubmissionAccepted && status != SubmissionRejected {
		return ErrInvalidInput
	}
	updated, err := s.Store.UpdateSubmissionStatus(ctx, submissionID, status)
	if err != nil {
		return err
	}
	if !updated {
		return ErrTaskNotFound
	}
	return nil
}

func validate(input TaskInput) error {
	if strings.TrimSpace(input.Project) == "" || strings.TrimSpace(input.Name) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(input.AssigneeID) == "" {
		return ErrInvalidInput
	}
	if input.Start.IsZero() || input.End.IsZero() || input.End.Before(input.Start) {
		return ErrInvalidInput
	}
	return nil
}
