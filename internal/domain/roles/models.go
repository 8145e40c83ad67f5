package roles

import "time"

// Role is the persisted owner of a permission bitfield. Index orders the
// hierarchy: ascending index means descending seniority, and new roles
// default to one past the current maximum (most junior).
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Index       int       `json:"index"`
	Permissions int64     `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type RoleInput struct {
	Name        string `json:"name"`
	Index       *int   `json:"index"`
	Permissions int64  `json:"permissions"`
}
