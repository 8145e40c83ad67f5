package leaves

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

const leaveColumns = `
    l.id, l.employee_id, e.first_name || ' ' || e.last_name,
    l.type, l.start_date, l.end_date, l.days, COALESCE(l.reason, ''), l.status,
    l.creator_id, COALESCE(l.modifier_id::text, ''),
    l.created_at, l.updated_at`

func (s *Store) listQuery(ctx context.Context, where string, args ...any) ([]Leave, error) {
	rows, err := s.DB.Query(ctx, `SELECT`+leaveColumns+`
    FROM leaves l
    JOIN employees e ON l.employee_id = e.id`+where+`
    ORDER BY l.start_date ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Leave
	for rows.Next() {
		var leave Leave
		if err := rows.Scan(
			&leave.ID, &leave.EmployeeID, &leave.EmployeeName, &leave.Type,
			&leave.StartDate, &leave.EndDate, &leave.Days, &leave.Reason, &leave.Status,
			&leave.CreatorID, &leave.ModifierID, &leave.CreatedAt, &leave.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, leave)
	}
	return out, rows.Err()
}

func (s *Store) List(ctx context.Context) ([]Leave, error) {
	return s.listQuery(ctx, "")
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	return s.listQuery(ctx, " WHERE l.employee_id = $1", employeeID)
}

func (s *Store) Get(ctx context.Context, leaveID string) (*Leave, error) {
	list, err := s.listQuery(ctx, " WHERE l.id = $1", leaveID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrLeaveNotFound
	}
	return &list[0], nil
}

func (s *Store) Create(ctx context.Context, creatorID string, input LeaveInput, days float64) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leaves (employee_id, type, start_date, end_date, days, reason, status, creator_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, input.EmployeeID, input.Type, input.StartDate, input.EndDate, days, input.Reason, StatusPending, creatorID).Scan(&id)
	return id, err
}

func (s *Store) UpdateStatus(ctx context.Context, leaveID, status, modifierID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leaves
    SET status = $1, modifier_id = $2, updated_at = now()
    WHERE id = $3
  `, status, modifierID, leaveID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Delete(ctx context.Context, leaveID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM leaves WHERE id = $1", leaveID)
	return err
}

func (s *Store) EmployeeEmail(ctx context.Context, employeeID string) (string, error) {
	var email string
	err := s.DB.QueryRow(ctx, "SELECT email FROM employees WHERE id = $1", employeeID).Scan(&email)
	return email, err
}

func (s *Store) EmployeeIDForUser(ctx context.Context, userID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE user_id = $1", userID).Scan(&id)
	return id, err
}
