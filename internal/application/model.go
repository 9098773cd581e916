package application

import (
	"slices"
	"time"
)

const (
	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageHired     = "hired"
	StageRejected  = "rejected"
	StageWithdrawn = "withdrawn"
)

var stages = []string{
	StageApplied,
	StageScreening,
	StageInterview,
	StageOffer,
	StageHired,
	StageRejected,
	StageWithdrawn,
}

// pipeline is the forward path of an application. Rejected and withdrawn can
// be reached from any stage on it that is not terminal.
var pipeline = map[string]string{
	StageApplied:   StageScreening,
	StageScreening: StageInterview,
	StageInterview: StageOffer,
	StageOffer:     StageHired,
}

// Stages returns every stage in pipeline order followed by the exits.
func Stages() []string {
	return slices.Clone(stages)
}

// PipelineStages returns the forward path from applied to hired.
func PipelineStages() []string {
	return slices.Clone(stages[:5])
}

func ValidStage(s string) bool {
	return slices.Contains(stages, s)
}

func IsTerminal(stage string) bool {
	switch stage {
	case StageHired, StageRejected, StageWithdrawn:
		return true
	}
	return false
}

// CanMove reports whether an application may move between the stages.
func CanMove(from, to string) bool {
	if IsTerminal(from) {
		return false
	}
	if to == StageRejected || to == StageWithdrawn {
		return true
	}
	return pipeline[from] == to
}

type Application struct {
	ID             string
	TenantID       string
	JobID          string
	CandidateID    string
	Stage          string
	Source         string
	RejectedReason *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StageEvent is one entry in the stage history of an application.
type StageEvent struct {
	ID            string
	ApplicationID string
	FromStage     *string
	ToStage       string
	ActorID       *string
	Note          string
	CreatedAt     time.Time
}
