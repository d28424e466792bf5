package jobs

import "time"

// JobStatus represents the persisted lifecycle state of a job.
//
// The persisted status is the last value explicitly written by a user action
// or by the automatic lateness sweep. The status shown to users is the
// *effective* status derived by lifecycle.StatusResolver, which may differ
// until the sweep writes it back.
type JobStatus string

const (
	StatusAwaitingSchedule JobStatus = "in_attesa_programmazione"
	StatusAssigned         JobStatus = "assegnato"
	StatusInProgress       JobStatus = "in_corso"
	StatusLate             JobStatus = "in_ritardo"
	StatusIncomplete       JobStatus = "da_completare"
	StatusCompleted        JobStatus = "completato"
	StatusCancelled        JobStatus = "annullato"
)

// ValidStatuses lists every status accepted from storage or API input.
var ValidStatuses = []JobStatus{
	StatusAwaitingSchedule,
	StatusAssigned,
	StatusInProgress,
	StatusLate,
	StatusIncomplete,
	StatusCompleted,
	StatusCancelled,
}

// IsValid reports whether s is a known job status.
func (s JobStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status is never auto-overridden by the
// resolver: completed and cancelled jobs are final, incomplete jobs hold
// until explicitly reassigned.
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusIncomplete || s == StatusCancelled
}

// JobType represents the intervention type.
type JobType string

const (
	TypeDelivery         JobType = "consegna"
	TypeAssembly         JobType = "montaggio"
	TypeDeliveryAssembly JobType = "consegna_montaggio"
	TypeService          JobType = "assistenza"
	TypeOther            JobType = "altro"
)

// IsValid reports whether t is a known intervention type.
func (t JobType) IsValid() bool {
	switch t {
	case TypeDelivery, TypeAssembly, TypeDeliveryAssembly, TypeService, TypeOther:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for the intervention type.
func (t JobType) DisplayName() string {
	switch t {
	case TypeDelivery:
		return "Consegna"
	case TypeAssembly:
		return "Montaggio"
	case TypeDeliveryAssembly:
		return "Consegna e montaggio"
	case TypeService:
		return "Assistenza"
	case TypeOther:
		return "Altro"
	default:
		return string(t)
	}
}

// Job represents a single scheduled visit/task under an order.
type Job struct {
	ID              string
	OrderID         string
	Type            JobType
	Status          JobStatus
	PlannedDate     *time.Time // nil means "not yet scheduled"
	AssignedWorkers []string
	Notes           string
	NotesBackoffice string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsScheduled reports whether the job has a planned date.
func (j *Job) IsScheduled() bool {
	return j.PlannedDate != nil
}

// HasWorkers reports whether at least one worker is assigned.
func (j *Job) HasWorkers() bool {
	return len(j.AssignedWorkers) > 0
}

// IsOpen reports whether the job is still subject to automatic status
// derivation (not in a terminal/manual-hold state).
func (j *Job) IsOpen() bool {
	return !j.Status.IsTerminal()
}

// HasWorker reports whether the given worker is assigned to this job.
func (j *Job) HasWorker(workerID string) bool {
	for _, id := range j.AssignedWorkers {
		if id == workerID {
			return true
		}
	}
	return false
}
