package roles

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

func (s *Store) List(ctx context.Context) ([]Role, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, index, permissions, created_at, updated_at
    FROM roles
    ORDER BY index ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Index, &role.Permissions, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, roleID string) (*Role, error) {
	var role Role
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, index, permissions, created_at, updated_at
    FROM roles
    WHERE id = $1
  `, roleID).Scan(&role.ID, &role.Name, &role.Index, &role.Permissions, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// NextIndex returns one past the highest index, the default slot for a new
// role.
func (s *Store) NextIndex(ctx context.Context) (int, error) {
	var next int
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(MAX(index), -1) + 1 FROM roles").Scan(&next)
	return next, err
}

func (s *Store) Create(ctx context.Context, role Role) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO roles (name, index, permissions)
    VALUES ($1,$2,$3)
    RETURNING id
  `, role.Name, role.Index, role.Permissions).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, role Role) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE roles
    SET name = $1, index = $2, permissions = $3, updated_at = now()
    WHERE id = $4
  `, role.Name, role.Index, role.Permissions, role.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Delete(ctx context.Context, roleID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM roles WHERE id = $1", roleID)
	return err
}

// InUse reports whether any employee or user account still references
// the role. Employees without login accounts count too.
func (s *Store) InUse(ctx context.Context, roleID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT (SELECT COUNT(1) FROM employees WHERE role_id = $1)
         + (SELECT COUNT(1) FROM users WHERE role_id = $1)
  `, roleID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
