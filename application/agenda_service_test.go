package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fieldops/domain/contracts"
	"fieldops/domain/fieldwork"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
	"fieldops/test/mocks"
)

func TestAgendaService_WeekView(t *testing.T) {
	jobRepo := &mocks.MockJobRepository{}
	workerRepo := &mocks.MockWorkerRepository{}
	eventLog := &mocks.MockEventLogRepository{}
	bus := &mocks.MockEventPublisher{}

	now := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	clock := lifecycle.FixedClock{At: now}
	resolver := lifecycle.NewStatusResolver(17, time.UTC)
	notifier := NewLifecycleNotifier(eventLog, bus)
	sync := NewLifecycleService(jobRepo, resolver, notifier, clock)
	service := NewAgendaService(jobRepo, workerRepo, sync, time.UTC)

	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)
	scheduled := []*jobs.Job{
		{ID: "mon", Status: jobs.StatusCompleted, PlannedDate: &monday},
		{ID: "wed", Status: jobs.StatusAssigned, PlannedDate: &wednesday},
	}
	backlog := []*jobs.Job{
		{ID: "later", Status: jobs.StatusAwaitingSchedule},
	}

	jobRepo.On("ListJobs", mock.Anything, mock.MatchedBy(func(f contracts.JobFilter) bool {
		return f.PlannedFrom != nil && f.PlannedTo != nil
	})).Return(scheduled, nil)
	jobRepo.On("ListJobs", mock.Anything, contracts.JobFilter{UnscheduledOnly: true, OpenOnly: true}).
		Return(backlog, nil)
	workerRepo.On("ListWorkers", mock.Anything).
		Return([]*fieldwork.Worker{{ID: "w1", Name: "Luca"}}, nil)

	// The assigned Wednesday job is overdue at the sweep instant and gets
	// persisted as late on view load.
	jobRepo.On("ApplyPatch", mock.Anything, "wed", mock.Anything).
		Return(&jobs.Job{ID: "wed", Status: jobs.StatusLate, PlannedDate: &wednesday}, nil)
	eventLog.On("Append", mock.Anything, "wed", contracts.EventTypeSweep, mock.Anything, mock.Anything).Return(nil)
	bus.On("PublishJobStatusChanged", mock.Anything).Return()
	bus.On("PublishSweepCompleted", mock.Anything).Return()

	week, err := service.WeekView(context.Background(), time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	assert.Equal(t, "2026-03-02", week.Window.Start.Format("2006-01-02"))
	assert.Len(t, week.Days, 7)
	assert.Len(t, week.Days[0].Jobs, 1)
	assert.Equal(t, "mon", week.Days[0].Jobs[0].Job.ID)
	assert.Len(t, week.Days[2].Jobs, 1)
	assert.Equal(t, jobs.StatusLate, week.Days[2].Jobs[0].EffectiveStatus)
	assert.Empty(t, week.Days[1].Jobs)
	assert.Len(t, week.Unscheduled, 1)
	assert.Equal(t, "later", week.Unscheduled[0].Job.ID)
	assert.Len(t, week.Workers, 1)
	jobRepo.AssertExpectations(t)
}
