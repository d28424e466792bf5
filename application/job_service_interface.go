package application

import (
	"context"
	"time"

	"fieldops/domain/contracts"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
)

// JobWithStatus pairs a job snapshot with its derived effective status.
type JobWithStatus struct {
	Job             *jobs.Job
	EffectiveStatus jobs.JobStatus
}

// NewJobParams are the creation parameters for a job under an order.
type NewJobParams struct {
	OrderID         string
	Type            jobs.JobType
	PlannedDate     *time.Time
	Notes           string
	NotesBackoffice string
}

// JobService provides job management and is the only path for manual
// lifecycle transitions.
type JobService interface {
	CreateJob(ctx context.Context, params NewJobParams) (*jobs.Job, error)
	GetJob(ctx context.Context, jobID string) (*JobWithStatus, error)
	GetJobEvents(ctx context.Context, jobID string) ([]*contracts.JobEvent, error)

	// RequestTransition validates the action, persists the resulting patch
	// and notifies the lifecycle notifier. Returns the authoritative
	// post-write job.
	RequestTransition(ctx context.Context, jobID string, action lifecycle.Action, payload lifecycle.TransitionPayload, actor lifecycle.Actor) (*JobWithStatus, error)

	// DeleteJob removes a job unless it has checkout history.
	DeleteJob(ctx context.Context, jobID string) error

	// ListJobsForWorker is the my-jobs view; it syncs statuses on load.
	ListJobsForWorker(ctx context.Context, workerID string) ([]*JobWithStatus, error)
	ListJobsForOrder(ctx context.Context, orderID string) ([]*JobWithStatus, error)
}
