package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fieldops/domain/contracts"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
	"fieldops/test/mocks"
)

func sweepFixture(t *testing.T) (*LifecycleService, *mocks.MockJobRepository, *mocks.MockEventLogRepository, *mocks.MockEventPublisher) {
	t.Helper()

	jobRepo := &mocks.MockJobRepository{}
	eventLog := &mocks.MockEventLogRepository{}
	bus := &mocks.MockEventPublisher{}

	resolver := lifecycle.NewStatusResolver(17, time.UTC)
	clock := lifecycle.FixedClock{At: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)}
	notifier := NewLifecycleNotifier(eventLog, bus)
	service := NewLifecycleService(jobRepo, resolver, notifier, clock)

	return service, jobRepo, eventLog, bus
}

func TestLifecycleService_SyncJobs_AppliesPendingChanges(t *testing.T) {
	service, jobRepo, eventLog, bus := sweepFixture(t)

	pastDay := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	future := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	jobList := []*jobs.Job{
		{ID: "a", Status: jobs.StatusAssigned, PlannedDate: &pastDay},
		{ID: "b", Status: jobs.StatusAssigned, PlannedDate: &future},
	}

	jobRepo.On("ApplyPatch", mock.Anything, "a", mock.MatchedBy(func(p *lifecycle.JobPatch) bool {
		return p.Status == jobs.StatusLate && !p.SetPlannedDate && !p.SetWorkers
	})).Return(&jobs.Job{ID: "a", Status: jobs.StatusLate, PlannedDate: &pastDay}, nil)
	eventLog.On("Append", mock.Anything, "a", contracts.EventTypeSweep, mock.Anything, mock.Anything).Return(nil)
	bus.On("PublishJobStatusChanged", mock.Anything).Return()
	bus.On("PublishSweepCompleted", mock.Anything).Return()

	report := service.SyncJobs(context.Background(), jobList)

	assert.Len(t, report.Applied, 1)
	assert.Empty(t, report.Failed)
	assert.Equal(t, "a", report.Applied[0].JobID)
	assert.Equal(t, jobs.StatusLate, report.Applied[0].NewStatus)
	// The in-memory snapshot is updated for the caller's view.
	assert.Equal(t, jobs.StatusLate, jobList[0].Status)
	assert.Equal(t, jobs.StatusAssigned, jobList[1].Status)
	jobRepo.AssertExpectations(t)
	eventLog.AssertExpectations(t)
}

func TestLifecycleService_SyncJobs_ContinuesPastWriteFailures(t *testing.T) {
	service, jobRepo, eventLog, bus := sweepFixture(t)

	pastDay := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	jobList := []*jobs.Job{
		{ID: "a", Status: jobs.StatusAssigned, PlannedDate: &pastDay},
		{ID: "b", Status: jobs.StatusInProgress, PlannedDate: &pastDay},
	}

	jobRepo.On("ApplyPatch", mock.Anything, "a", mock.Anything).
		Return(nil, errors.New("disk full"))
	jobRepo.On("ApplyPatch", mock.Anything, "b", mock.Anything).
		Return(&jobs.Job{ID: "b", Status: jobs.StatusLate, PlannedDate: &pastDay}, nil)
	eventLog.On("Append", mock.Anything, "b", contracts.EventTypeSweep, mock.Anything, mock.Anything).Return(nil)
	bus.On("PublishJobStatusChanged", mock.Anything).Return()
	bus.On("PublishSweepCompleted", mock.Anything).Return()

	report := service.SyncJobs(context.Background(), jobList)

	assert.Len(t, report.Applied, 1)
	assert.Equal(t, "b", report.Applied[0].JobID)
	assert.Len(t, report.Failed, 1)
	assert.Equal(t, "a", report.Failed[0].JobID)
	// The failed job keeps its last persisted status.
	assert.Equal(t, jobs.StatusAssigned, jobList[0].Status)
	jobRepo.AssertExpectations(t)
}

func TestLifecycleService_SyncJobs_SecondRunIsNoop(t *testing.T) {
	service, jobRepo, eventLog, bus := sweepFixture(t)

	pastDay := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	jobList := []*jobs.Job{
		{ID: "a", Status: jobs.StatusAssigned, PlannedDate: &pastDay},
	}

	jobRepo.On("ApplyPatch", mock.Anything, "a", mock.Anything).
		Return(&jobs.Job{ID: "a", Status: jobs.StatusLate, PlannedDate: &pastDay}, nil).Once()
	eventLog.On("Append", mock.Anything, "a", contracts.EventTypeSweep, mock.Anything, mock.Anything).Return(nil)
	bus.On("PublishJobStatusChanged", mock.Anything).Return()
	bus.On("PublishSweepCompleted", mock.Anything).Return()

	first := service.SyncJobs(context.Background(), jobList)
	assert.Len(t, first.Applied, 1)

	second := service.SyncJobs(context.Background(), jobList)
	assert.Empty(t, second.Applied)
	assert.Empty(t, second.Failed)
	jobRepo.AssertExpectations(t)
}

func TestLifecycleService_SweepAll_ListsOpenJobsOnly(t *testing.T) {
	service, jobRepo, _, _ := sweepFixture(t)

	jobRepo.On("ListJobs", mock.Anything, contracts.JobFilter{OpenOnly: true}).
		Return([]*jobs.Job{}, nil)

	report, err := service.SweepAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, report.Applied)
	jobRepo.AssertExpectations(t)
}

func TestLifecycleService_SweepAll_ListFailure(t *testing.T) {
	service, jobRepo, _, _ := sweepFixture(t)

	jobRepo.On("ListJobs", mock.Anything, mock.Anything).
		Return(nil, errors.New("db closed"))

	_, err := service.SweepAll(context.Background())
	assert.Error(t, err)
}
