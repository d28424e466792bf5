package lifecycle

import (
	"time"

	"fieldops/domain/jobs"
)

// DefaultCutoffHour is the end of the planned working day: a job still
// in progress after this hour on its planned date counts as late.
const DefaultCutoffHour = 17

// StatusResolver derives the effective status of a job from its persisted
// state and the current time. Pure, no I/O; consulted at render time and by
// the lateness sweep. This is the single owner of the auto-progress and
// auto-lateness rules.
type StatusResolver struct {
	// CutoffHour is the local hour (0-23) ending the planned working day.
	CutoffHour int
	// Location is the timezone the cutoff applies in.
	Location *time.Location
}

// NewStatusResolver creates a resolver with the given cutoff hour in loc.
// Zero/nil arguments fall back to DefaultCutoffHour and time.Local.
func NewStatusResolver(cutoffHour int, loc *time.Location) *StatusResolver {
	if cutoffHour <= 0 || cutoffHour > 23 {
		cutoffHour = DefaultCutoffHour
	}
	if loc == nil {
		loc = time.Local
	}
	return &StatusResolver{CutoffHour: cutoffHour, Location: loc}
}

// Resolve maps persisted status + planned date to the effective status at
// instant now.
//
// Rules, applied until a fixed point so one call converges:
//  1. Terminal and manual-hold statuses (completato, da_completare,
//     annullato) are never overridden.
//  2. assegnato with plannedDate <= now becomes in_corso.
//  3. in_corso past the working-day cutoff of the planned date becomes
//     in_ritardo.
//
// Chaining 2 and 3 means an assigned job whose planned day is already over
// resolves straight to in_ritardo; without it, a sweep would need two passes
// to settle and would not be idempotent.
func (r *StatusResolver) Resolve(status jobs.JobStatus, plannedDate *time.Time, now time.Time) jobs.JobStatus {
	if status.IsTerminal() {
		return status
	}

	if status == jobs.StatusAssigned && plannedDate != nil && !plannedDate.After(now) {
		status = jobs.StatusInProgress
	}

	if status == jobs.StatusInProgress && plannedDate != nil && plannedDate.Before(now) {
		if now.After(r.cutoffFor(*plannedDate)) {
			status = jobs.StatusLate
		}
	}

	return status
}

// ResolveJob is a convenience wrapper over Resolve.
func (r *StatusResolver) ResolveJob(job *jobs.Job, now time.Time) jobs.JobStatus {
	return r.Resolve(job.Status, job.PlannedDate, now)
}

// cutoffFor returns the end of the working day for the given planned date.
func (r *StatusResolver) cutoffFor(plannedDate time.Time) time.Time {
	d := plannedDate.In(r.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), r.CutoffHour, 0, 0, 0, r.Location)
}
