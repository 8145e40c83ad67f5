package tasks

import "time"

type Task struct {
	ID              string    `json:"id"`
	Project         string    `json:"project"`
	Name            string    `json:"name"`
	Summary         string    `json:"summary"`
	Description     string    `json:"description"`
	AssigneeID      string    `json:"assigneeId"`
	AssigneeName    string    `json:"assigneeName,omitempty"`
	CreatorID       string    `json:"creatorId"`
	CreatorName     string    `json:"creatorName,omitempty"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	CalendarEventID string    `json:"calendarEventId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Submissions []Submission `json:"submissions,omitempty"`
}

type Submission struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	AuthorID  string    `json:"authorId"`
	Note      string    `json:"note"`
	Link      string    `json:"link,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	SubmissionPending  = "pending"
	SubmissionAccepted = "accepted"
	SubmissionRejected = "rejected"
)

type TaskInput struct {
	Project     string    `json:"project"`
	Name        string    `json:"name"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	AssigneeID  string    `json:"assigneeId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type SubmissionInput struct {
	Note string `json:"note"`
	Link string `json:"link"`
}
