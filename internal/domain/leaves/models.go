package leaves

import "time"

type Leave struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	Type         string    `json:"type"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Days         float64   `json:"days"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	CreatorID    string    `json:"creatorId"`
	ModifierID   string    `json:"modifierId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type LeaveInput struct {
	EmployeeID string    `json:"employeeId"`
	Type       string    `json:"type"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Reason     string    `json:"reason"`
}
