package candidate

import "time"

const (
	SourceManual = "manual"
	SourceSelf   = "self"
	SourceAPI    = "api"
)

type Candidate struct {
	ID              string
	TenantID        string
	UserID          *string
	Email           string
	FullName        string
	Headline        string
	Location        string
	YearsExperience int
	Skills          []string
	ResumeURL       string
	Source          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OwnedBy reports whether the profile belongs to the user.
func (c *Candidate) OwnedBy(userID string) bool {
	return c.UserID != nil && userID != "" && *c.UserID == userID
}
