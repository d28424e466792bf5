package events

import (
	"time"

	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
)

// JobStatusChangedEvent represents any persisted status change, manual or
// automatic.
type JobStatusChangedEvent struct {
	JobID     string
	OldStatus jobs.JobStatus
	NewStatus jobs.JobStatus
	// Action is the manual action that caused the change, empty for sweep
	// writes.
	Action lifecycle.Action
	// ActorID identifies who requested the change, empty for sweep writes.
	ActorID   string
	Timestamp time.Time
}

// JobAssignedEvent represents a job being scheduled and assigned to workers.
type JobAssignedEvent struct {
	JobID       string
	PlannedDate time.Time
	WorkerIDs   []string
	Timestamp   time.Time
}

// JobCheckedOutEvent represents a worker-initiated closing report (complete
// or mark-incomplete).
type JobCheckedOutEvent struct {
	JobID     string
	Status    jobs.JobStatus
	ActorID   string
	Note      string
	Timestamp time.Time
}

// SweepCompletedEvent represents one run of the automatic lateness sweep.
type SweepCompletedEvent struct {
	Applied   []lifecycle.StatusChange
	FailedIDs []string
	Timestamp time.Time
}
