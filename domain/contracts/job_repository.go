package contracts

import (
	"context"
	"time"

	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
)

// JobFilter narrows job listings. Zero value matches everything.
type JobFilter struct {
	OrderID     string
	WorkerID    string
	Statuses    []jobs.JobStatus
	PlannedFrom *time.Time
	PlannedTo   *time.Time
	// OpenOnly restricts to jobs outside terminal/manual-hold states.
	OpenOnly bool
	// UnscheduledOnly restricts to jobs without a planned date.
	UnscheduledOnly bool
}

// JobRepository defines persistence for jobs and their assignment sets.
type JobRepository interface {
	GetJob(ctx context.Context, jobID string) (*jobs.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*jobs.Job, error)
	CreateJob(ctx context.Context, job *jobs.Job) error

	// ApplyPatch writes only the fields the patch sets and returns the
	// authoritative post-write row.
	ApplyPatch(ctx context.Context, jobID string, patch *lifecycle.JobPatch) (*jobs.Job, error)

	// DeleteJob removes a job; callers enforce the checkout-event guard
	// before invoking it.
	DeleteJob(ctx context.Context, jobID string) error

	CountJobsForOrder(ctx context.Context, orderID string) (int, error)
}
