package assessment

import "time"

type Assessment struct {
	ID           string
	TenantID     string
	JobID        string
	Title        string
	Instructions string
	MaxScore     int
	CreatedAt    time.Time
}

// Result is the score an application earned on an assessment.
type Result struct {
	ID              string
	AssessmentID    string
	AssessmentTitle string
	MaxScore        int
	ApplicationID   string
	Score           int
	Feedback        string
	SubmittedAt     time.Time
}
