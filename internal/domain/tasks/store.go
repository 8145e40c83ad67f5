package tasks

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const taskColumns = `
    t.id, t.project, t.name, t.summary, t.description,
    t.assignee_id, a.first_name || ' ' || a.last_name,
    t.creator_id, c.first_name || ' ' || c.last_name,
    t.start_at, t.end_at, COALESCE(t.calendar_event_id, ''),
    t.created_at, t.updated_at`

const taskJoins = `
    FROM tasks t
    JOIN employees a ON t.assignee_id = a.id
    JOIN employees c ON t.creator_id = c.id`

func (s *Store) listQuery(ctx context.Context, where string, args ...any) ([]Task, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+taskColumns+taskJoins+where+" ORDER BY t.start_at ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var task Task
		if err := rows.Scan(
			&task.ID, &task.Project, &task.Name, &task.Summary, &task.Description,
			&task.AssigneeID, &task.AssigneeName, &task.CreatorID, &task.CreatorName,
			&task.Start, &task.End, &task.CalendarEventID, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

// ListAll returns every task in the company.
func (s *Store) ListAll(ctx context.Context) ([]Task, error) {
	return s.listQuery(ctx, "")
}

// ListFor returns tasks the employee is assigned to or created.
func (s *Store) ListFor(ctx context.Context, employeeID string) ([]Task, error) {
	return s.listQuery(ctx, " WHERE t.assignee_id = $1 OR t.creator_id = $1", employeeID)
}

func (s *Store) Get(ctx context.Context, taskID string) (*Task, error) {
	list, err := s.listQuery(ctx, " WHERE t.id = $1", taskID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrTaskNotFound
	}
	task := list[0]

	subs, err := s.Submissions(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.Submissions = subs
	return &task, nil
}

func (s *Store) Create(ctx context.Context, creatorID string, input TaskInput, calendarEventID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO tasks (project, name, summary, description, assignee_id, creator_id, start_at, end_at, calendar_event_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, input.Project, input.Name, input.Summary, input.Description, input.AssigneeID, creatorID,
		input.Start, input.End, calendarEventID).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, taskID string, input TaskInput) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE tasks
    SET project = $1, name = $2, summary = $3, description = $4,
        assignee_id = $5, start_at = $6, end_at = $7, updated_at = now()
    WHERE id = $8
  `, input.Project, input.Name, input.Summary, input.Description,
		input.AssigneeID, input.Start, input.End, taskID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM tasks WHERE id = $1", taskID)
	return err
}

func (s *Store) Submissions(ctx context.Context, taskID string) ([]Submission, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, task_id, author_id, note, COALESCE(link, ''), status, created_at, updated_at
    FROM submissions
    WHERE task_id = $1
    ORDER BY created_at ASC
  `, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.TaskID, &sub.AuthorID, &sub.Note, &sub.Link, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *Store) CreateSubmission(ctx context.Context, taskID, authorID string, input SubmissionInput) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO submissions (task_id, author_id, note, link, status)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, taskID, authorID, input.Note, input.Link, SubmissionPending).Scan(&id)
	return id, err
}

func (s *Store) UpdateSubmissionStatus(ctx context.Context, submissionID, status string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE submissions SET status = $1, updated_at = now() WHERE id = $2
  `, status, submissionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AssigneeEmail resolves the assignee's work email for notifications.
func (s *Store) AssigneeEmail(ctx context.Context, employeeID string) (string, error) {
	var email string
	err := s.DB.QueryRow(ctx, "SELECT email FROM employees WHERE id = $1", employeeID).Scan(&email)
	return email, err
}

// EmployeeIDForUser maps the authenticated user to their employee record.
func (s *Store) EmployeeIDForUser(ctx context.Context, userID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE user_id = $1", userID).Scan(&id)
	return id, err
}
