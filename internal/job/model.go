package job

import "time"

const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

const (
	TypeFullTime   = "full_time"
	TypePartTime   = "part_time"
	TypeContract   = "contract"
	TypeInternship = "internship"
)

// transitions lists the statuses a job may move to from each status.
var transitions = map[string]string{
	StatusDraft: StatusOpen,
	StatusOpen:  StatusClosed,
}

// CanTransition reports whether a job may move from one status to another.
func CanTransition(from, to string) bool {
	next, ok := transitions[from]
	return ok && next == to
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusOpen, StatusClosed:
		return true
	}
	return false
}

type Job struct {
	ID             string
	TenantID       string
	Title          string
	Description    string
	Location       string
	EmploymentType string
	Remote         bool
	SalaryMin      *int
	SalaryMax      *int
	Skills         []string
	Status         string
	PublishedAt    *time.Time
	ClosedAt       *time.Time
	CreatedBy      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
