package employees

import "time"

type Employee struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId,omitempty"`
	EmployeeNumber string     `json:"employeeNumber"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Title          string     `json:"title"`
	Email          string     `json:"email"`
	Contact        string     `json:"contact"`
	Department     string     `json:"department"`

	// Basic tier.
	RoleID        string     `json:"roleId,omitempty"`
	Type          string     `json:"type,omitempty"`
	Status        string     `json:"status,omitempty"`
	Location      string     `json:"location,omitempty"`
	JoinedOn      *time.Time `json:"joinedOn,omitempty"`
	ContractEnd   *time.Time `json:"contractEnd,omitempty"`
	LeftOn        *time.Time `json:"leftOn,omitempty"`
	PersonalEmail string     `json:"personalEmail,omitempty"`
	PersonalPhone string     `json:"personalPhone,omitempty"`

	// Sensitive tier.
	Salary      *float64 `json:"salary,omitempty"`
	BankAccount string   `json:"bankAccount,omitempty"`
	NationalID  string   `json:"nationalId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EmployeeInput struct {
	EmployeeNumber string     `json:"employeeNumber"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Title          string     `json:"title"`
	Email          string     `json:"email"`
	Contact        string     `json:"contact"`
	Department     string     `json:"department"`
	RoleID         string     `json:"roleId"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Location       string     `json:"location"`
	JoinedOn       *time.Time `json:"joinedOn"`
	ContractEnd    *time.Time `json:"contractEnd"`
	PersonalEmail  string     `json:"personalEmail"`
	PersonalPhone  string     `json:"personalPhone"`
	Salary         *float64   `json:"salary"`
	BankAccount    string     `json:"bankAccount"`
	NationalID     string     `json:"nationalId"`
}
