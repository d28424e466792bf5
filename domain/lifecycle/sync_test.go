package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fieldops/domain/jobs"
)

func TestPendingChanges(t *testing.T) {
	resolver := NewStatusResolver(17, time.UTC)
	now := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	pastDay := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	future := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	jobList := []*jobs.Job{
		{ID: "a", Status: jobs.StatusAssigned, PlannedDate: &today},    // due -> in progress
		{ID: "b", Status: jobs.StatusAssigned, PlannedDate: &future},   // untouched
		{ID: "c", Status: jobs.StatusInProgress, PlannedDate: &pastDay}, // overdue -> late
		{ID: "d", Status: jobs.StatusAssigned, PlannedDate: &pastDay},  // chains straight to late
		{ID: "e", Status: jobs.StatusCompleted, PlannedDate: &pastDay}, // terminal, untouched
		{ID: "f", Status: jobs.StatusAwaitingSchedule},                 // unscheduled, untouched
	}

	changes := PendingChanges(resolver, jobList, now)

	assert.Equal(t, []StatusChange{
		{JobID: "a", OldStatus: jobs.StatusAssigned, NewStatus: jobs.StatusInProgress},
		{JobID: "c", OldStatus: jobs.StatusInProgress, NewStatus: jobs.StatusLate},
		{JobID: "d", OldStatus: jobs.StatusAssigned, NewStatus: jobs.StatusLate},
	}, changes)
}

func TestPendingChanges_SecondPassIsEmpty(t *testing.T) {
	resolver := NewStatusResolver(17, time.UTC)
	now := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	pastDay := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	jobList := []*jobs.Job{
		{ID: "a", Status: jobs.StatusAssigned, PlannedDate: &pastDay},
		{ID: "b", Status: jobs.StatusInProgress, PlannedDate: &pastDay},
	}

	// Apply the first pass the way the sweep would.
	for _, change := range PendingChanges(resolver, jobList, now) {
		for _, job := range jobList {
			if job.ID == change.JobID {
				job.Status = change.NewStatus
			}
		}
	}

	assert.Empty(t, PendingChanges(resolver, jobList, now))
}
