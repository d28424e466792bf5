package presenters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fieldops/application"
	"fieldops/domain/jobs"
)

func TestJobPresenter_FormatJob(t *testing.T) {
	p := NewJobPresenter()
	planned := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	view := p.FormatJob(&application.JobWithStatus{
		Job: &jobs.Job{
			ID:              "job-1",
			OrderID:         "order-1",
			Type:            jobs.TypeDeliveryAssembly,
			Status:          jobs.StatusAssigned,
			PlannedDate:     &planned,
			AssignedWorkers: []string{"w1"},
			Notes:           "call first",
		},
		EffectiveStatus: jobs.StatusInProgress,
	})

	assert.Equal(t, "job-1", view.ID)
	assert.Equal(t, "consegna_montaggio", view.Type)
	assert.Equal(t, "Consegna e montaggio", view.TypeLabel)
	assert.Equal(t, "assegnato", view.Status)
	assert.Equal(t, "in_corso", view.EffectiveStatus)
	assert.NotNil(t, view.PlannedDate)
	assert.Equal(t, "2026-03-05T09:00:00Z", *view.PlannedDate)
	assert.Equal(t, []string{"w1"}, view.Workers)
}

func TestJobPresenter_FormatJob_Unscheduled(t *testing.T) {
	p := NewJobPresenter()

	view := p.FormatJob(&application.JobWithStatus{
		Job: &jobs.Job{
			ID:     "job-2",
			Type:   jobs.TypeService,
			Status: jobs.StatusAwaitingSchedule,
		},
		EffectiveStatus: jobs.StatusAwaitingSchedule,
	})

	assert.Nil(t, view.PlannedDate)
	assert.NotNil(t, view.Workers, "workers must serialize as an empty array, not null")
	assert.Empty(t, view.Workers)
}

func TestJobPresenter_FormatJobs_EmptyListIsNotNil(t *testing.T) {
	p := NewJobPresenter()
	assert.NotNil(t, p.FormatJobs(nil))
}
