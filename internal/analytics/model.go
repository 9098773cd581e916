package analytics

import "time"

type StageCount struct {
	Stage string
	Count int
}

type Overview struct {
	From             time.Time
	To               time.Time
	OpenJobs         int
	Applications     int
	Hires            int
	AvgDaysToHire    *float64
	ApplicationsFrom map[string]int
}

// FunnelStage is a pipeline stage with the number of applications that ever
// reached it and the share of the previous stage that got there.
type FunnelStage struct {
	Stage      string
	Reached    int
	Conversion float64
}

type Funnel struct {
	JobID     string
	Stages    []FunnelStage
	Rejected  int
	Withdrawn int
}
