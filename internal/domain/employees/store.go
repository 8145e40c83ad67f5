package employees

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

const employeeColumns = `
    id,
    COALESCE(user_id::text, ''),
    COALESCE(employee_number, ''),
    first_name, last_name,
    COALESCE(title, ''),
    email,
    COALESCE(contact, ''),
    COALESCE(department, ''),
    COALESCE(role_id::text, ''),
    COALESCE(type, ''),
    COALESCE(status, ''),
    COALESCE(location, ''),
    joined_on, contract_end, left_on,
    COALESCE(personal_email, ''),
    COALESCE(personal_phone, ''),
    salary,
    COALESCE(bank_account, ''),
    COALESCE(national_id, ''),
    created_at, updated_at`

func scanEmployee(row interface{ Scan(dest ...any) error }) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Title,
		&emp.Email, &emp.Contact, &emp.Department, &emp.RoleID, &emp.Type, &emp.Status,
		&emp.Location, &emp.JoinedOn, &emp.ContractEnd, &emp.LeftOn,
		&emp.PersonalEmail, &emp.PersonalPhone, &emp.Salary, &emp.BankAccount, &emp.NationalID,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+employeeColumns+" FROM employees ORDER BY employee_number ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, employeeID string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM employees WHERE id = $1", employeeID))
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) GetByUserID(ctx context.Context, userID string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM employees WHERE user_id = $1", userID))
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) Create(ctx context.Context, input EmployeeInput) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (
      employee_number, first_name, last_name, title, email, contact, department,
      role_id, type, status, location, joined_on, contract_end,
      personal_email, personal_phone, salary, bank_account, national_id
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,'')::uuid,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
    RETURNING id
  `, input.EmployeeNumber, input.FirstName, input.LastName, input.Title, input.Email,
		input.Contact, input.Department, input.RoleID, input.Type, input.Status, input.Location,
		input.JoinedOn, input.ContractEnd, input.PersonalEmail, input.PersonalPhone,
		input.Salary, input.BankAccount, input.NationalID).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, employeeID string, input EmployeeInput) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET employee_number = $1, first_name = $2, last_name = $3, title = $4, email = $5,
        contact = $6, department = $7, role_id = NULLIF($8,'')::uuid, type = $9,
        status = $10, location = $11, joined_on = $12, contract_end = $13,
        personal_email = $14, personal_phone = $15, salary = $16,
        bank_account = $17, national_id = $18, updated_at = now()
    WHERE id = $19
  `, input.EmployeeNumber, input.FirstName, input.LastName, input.Title, input.Email,
		input.Contact, input.Department, input.RoleID, input.Type, input.Status, input.Location,
		input.JoinedOn, input.ContractEnd, input.PersonalEmail, input.PersonalPhone,
		input.Salary, input.BankAccount, input.NationalID, employeeID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Delete(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", employeeID)
	return err
}
