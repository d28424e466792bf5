package lifecycle

import (
	"time"

	"fieldops/domain/jobs"
)

// StatusChange records one job whose effective status differs from its
// persisted status at the sweep instant.
type StatusChange struct {
	JobID     string
	OldStatus jobs.JobStatus
	NewStatus jobs.JobStatus
}

// PendingChanges computes the ordered list of status writes a sweep over
// the given jobs must apply at instant now. Pure; persisting the changes is
// the application layer's job. Because Resolve converges in one call,
// reapplying the sweep with the same now yields an empty list.
func PendingChanges(resolver *StatusResolver, jobList []*jobs.Job, now time.Time) []StatusChange {
	var changes []StatusChange
	for _, job := range jobList {
		effective := resolver.ResolveJob(job, now)
		if effective != job.Status {
			changes = append(changes, StatusChange{
				JobID:     job.ID,
				OldStatus: job.Status,
				NewStatus: effective,
			})
		}
	}
	return changes
}
