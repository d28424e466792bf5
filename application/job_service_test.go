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

type jobServiceFixture struct {
	service   JobService
	jobRepo   *mocks.MockJobRepository
	orderRepo *mocks.MockOrderRepository
	eventLog  *mocks.MockEventLogRepository
	bus       *mocks.MockEventPublisher
	now       time.Time
}

func newJobServiceFixture(t *testing.T) *jobServiceFixture {
	t.Helper()

	jobRepo := &mocks.MockJobRepository{}
	orderRepo := &mocks.MockOrderRepository{}
	eventLog := &mocks.MockEventLogRepository{}
	bus := &mocks.MockEventPublisher{}

	now := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	clock := lifecycle.FixedClock{At: now}
	resolver := lifecycle.NewStatusResolver(17, time.UTC)
	validator := lifecycle.NewTransitionValidator(clock)
	notifier := NewLifecycleNotifier(eventLog, bus)
	sync := NewLifecycleService(jobRepo, resolver, notifier, clock)

	service := NewJobService(jobRepo, orderRepo, eventLog, validator, sync, notifier, clock)
	return &jobServiceFixture{
		service:   service,
		jobRepo:   jobRepo,
		orderRepo: orderRepo,
		eventLog:  eventLog,
		bus:       bus,
		now:       now,
	}
}

func TestJobService_CreateJob(t *testing.T) {
	f := newJobServiceFixture(t)

	f.orderRepo.On("GetOrder", mock.Anything, "order-1").
		Return(&fieldwork.JobOrder{ID: "order-1"}, nil)
	f.jobRepo.On("CreateJob", mock.Anything, mock.MatchedBy(func(j *jobs.Job) bool {
		return j.ID != "" &&
			j.OrderID == "order-1" &&
			j.Status == jobs.StatusAwaitingSchedule &&
			j.Type == jobs.TypeDelivery
	})).Return(nil)

	job, err := f.service.CreateJob(context.Background(), NewJobParams{
		OrderID: "order-1",
		Type:    jobs.TypeDelivery,
		Notes:   "ground floor",
	})

	assert.NoError(t, err)
	assert.Equal(t, jobs.StatusAwaitingSchedule, job.Status)
	assert.Equal(t, "ground floor", job.Notes)
	f.jobRepo.AssertExpectations(t)
}

func TestJobService_CreateJob_UnknownOrder(t *testing.T) {
	f := newJobServiceFixture(t)

	f.orderRepo.On("GetOrder", mock.Anything, "missing").
		Return(nil, contracts.ErrNotFound)

	_, err := f.service.CreateJob(context.Background(), NewJobParams{
		OrderID: "missing",
		Type:    jobs.TypeDelivery,
	})
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}

func TestJobService_CreateJob_InvalidType(t *testing.T) {
	f := newJobServiceFixture(t)

	_, err := f.service.CreateJob(context.Background(), NewJobParams{
		OrderID: "order-1",
		Type:    "delivery",
	})
	assert.Error(t, err)
}

func TestJobService_GetJob_DerivesEffectiveStatus(t *testing.T) {
	f := newJobServiceFixture(t)

	pastDay := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f.jobRepo.On("GetJob", mock.Anything, "job-1").
		Return(&jobs.Job{ID: "job-1", Status: jobs.StatusAssigned, PlannedDate: &pastDay}, nil)

	result, err := f.service.GetJob(context.Background(), "job-1")
	assert.NoError(t, err)
	// Stored status untouched, effective status derived.
	assert.Equal(t, jobs.StatusAssigned, result.Job.Status)
	assert.Equal(t, jobs.StatusLate, result.EffectiveStatus)
}

func TestJobService_RequestTransition_Assign(t *testing.T) {
	f := newJobServiceFixture(t)

	planned := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	stored := &jobs.Job{ID: "job-1", Status: jobs.StatusAwaitingSchedule}
	updated := &jobs.Job{
		ID:              "job-1",
		Status:          jobs.StatusAssigned,
		PlannedDate:     &planned,
		AssignedWorkers: []string{"w1"},
	}

	f.jobRepo.On("GetJob", mock.Anything, "job-1").Return(stored, nil)
	f.jobRepo.On("ApplyPatch", mock.Anything, "job-1", mock.MatchedBy(func(p *lifecycle.JobPatch) bool {
		return p.Status == jobs.StatusAssigned && p.SetPlannedDate && p.SetWorkers
	})).Return(updated, nil)
	f.eventLog.On("Append", mock.Anything, "job-1", contracts.EventTypeStatusChanged, mock.Anything, f.now).Return(nil)
	f.bus.On("PublishJobStatusChanged", mock.Anything).Return()
	f.bus.On("PublishJobAssigned", mock.Anything).Return()

	result, err := f.service.RequestTransition(context.Background(), "job-1", lifecycle.ActionAssign,
		lifecycle.TransitionPayload{PlannedDate: &planned, WorkerIDs: []string{"w1"}},
		lifecycle.Actor{ID: "user-1", Role: lifecycle.RoleBackoffice})

	assert.NoError(t, err)
	assert.Equal(t, jobs.StatusAssigned, result.Job.Status)
	f.jobRepo.AssertExpectations(t)
	f.eventLog.AssertExpectations(t)
	f.bus.AssertCalled(t, "PublishJobAssigned", mock.Anything)
}

func TestJobService_RequestTransition_ValidationFailureDoesNotWrite(t *testing.T) {
	f := newJobServiceFixture(t)

	f.jobRepo.On("GetJob", mock.Anything, "job-1").
		Return(&jobs.Job{ID: "job-1", Status: jobs.StatusAwaitingSchedule}, nil)

	_, err := f.service.RequestTransition(context.Background(), "job-1", lifecycle.ActionAssign,
		lifecycle.TransitionPayload{WorkerIDs: []string{"w1"}},
		lifecycle.Actor{ID: "user-1", Role: lifecycle.RoleBackoffice})

	assert.ErrorIs(t, err, lifecycle.ErrMissingScheduleInfo)
	f.jobRepo.AssertNotCalled(t, "ApplyPatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestJobService_RequestTransition_CompleteRecordsCheckout(t *testing.T) {
	f := newJobServiceFixture(t)

	planned := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	stored := &jobs.Job{ID: "job-1", Status: jobs.StatusInProgress, PlannedDate: &planned}
	updated := &jobs.Job{ID: "job-1", Status: jobs.StatusCompleted, PlannedDate: &planned}

	f.jobRepo.On("GetJob", mock.Anything, "job-1").Return(stored, nil)
	f.jobRepo.On("ApplyPatch", mock.Anything, "job-1", mock.Anything).Return(updated, nil)
	f.eventLog.On("Append", mock.Anything, "job-1", contracts.EventTypeStatusChanged, mock.Anything, f.now).Return(nil)
	f.eventLog.On("Append", mock.Anything, "job-1", contracts.EventTypeCheckout, mock.Anything, f.now).Return(nil)
	f.bus.On("PublishJobStatusChanged", mock.Anything).Return()
	f.bus.On("PublishJobCheckedOut", mock.Anything).Return()

	result, err := f.service.RequestTransition(context.Background(), "job-1", lifecycle.ActionComplete,
		lifecycle.TransitionPayload{Note: "all done"},
		lifecycle.Actor{ID: "worker-1", Role: lifecycle.RoleWorker})

	assert.NoError(t, err)
	assert.Equal(t, jobs.StatusCompleted, result.EffectiveStatus)
	f.eventLog.AssertExpectations(t)
}

func TestJobService_RequestTransition_ManualOverrideAudited(t *testing.T) {
	f := newJobServiceFixture(t)

	stored := &jobs.Job{ID: "job-1", Status: jobs.StatusCompleted}
	updated := &jobs.Job{ID: "job-1", Status: jobs.StatusInProgress}

	f.jobRepo.On("GetJob", mock.Anything, "job-1").Return(stored, nil)
	f.jobRepo.On("ApplyPatch", mock.Anything, "job-1", mock.Anything).Return(updated, nil)
	f.eventLog.On("Append", mock.Anything, "job-1", contracts.EventTypeManualOverride, mock.Anything, f.now).Return(nil)
	f.bus.On("PublishJobStatusChanged", mock.Anything).Return()

	_, err := f.service.RequestTransition(context.Background(), "job-1", lifecycle.ActionManualOverride,
		lifecycle.TransitionPayload{NewStatus: jobs.StatusInProgress},
		lifecycle.Actor{ID: "admin-1", Role: lifecycle.RoleBackoffice})

	assert.NoError(t, err)
	f.eventLog.AssertExpectations(t)
}

func TestJobService_DeleteJob_GuardsCheckoutHistory(t *testing.T) {
	f := newJobServiceFixture(t)

	f.jobRepo.On("GetJob", mock.Anything, "job-1").
		Return(&jobs.Job{ID: "job-1", Status: jobs.StatusCompleted}, nil)
	f.eventLog.On("CountForJobByType", mock.Anything, "job-1", contracts.EventTypeCheckout).
		Return(2, nil)

	err := f.service.DeleteJob(context.Background(), "job-1")
	assert.ErrorIs(t, err, contracts.ErrJobHasCheckoutEvents)
	f.jobRepo.AssertNotCalled(t, "DeleteJob", mock.Anything, mock.Anything)
}

func TestJobService_DeleteJob(t *testing.T) {
	f := newJobServiceFixture(t)

	f.jobRepo.On("GetJob", mock.Anything, "job-1").
		Return(&jobs.Job{ID: "job-1", Status: jobs.StatusAwaitingSchedule}, nil)
	f.eventLog.On("CountForJobByType", mock.Anything, "job-1", contracts.EventTypeCheckout).
		Return(0, nil)
	f.jobRepo.On("DeleteJob", mock.Anything, "job-1").Return(nil)

	err := f.service.DeleteJob(context.Background(), "job-1")
	assert.NoError(t, err)
	f.jobRepo.AssertExpectations(t)
}

func TestJobService_ListJobsForWorker_SyncsBeforeReturning(t *testing.T) {
	f := newJobServiceFixture(t)

	pastDay := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	jobList := []*jobs.Job{
		{ID: "a", Status: jobs.StatusAssigned, PlannedDate: &pastDay, AssignedWorkers: []string{"w1"}},
	}

	f.jobRepo.On("ListJobs", mock.Anything, contracts.JobFilter{WorkerID: "w1", OpenOnly: true}).
		Return(jobList, nil)
	f.jobRepo.On("ApplyPatch", mock.Anything, "a", mock.Anything).
		Return(&jobs.Job{ID: "a", Status: jobs.StatusLate, PlannedDate: &pastDay}, nil)
	f.eventLog.On("Append", mock.Anything, "a", contracts.EventTypeSweep, mock.Anything, mock.Anything).Return(nil)
	f.bus.On("PublishJobStatusChanged", mock.Anything).Return()
	f.bus.On("PublishSweepCompleted", mock.Anything).Return()

	result, err := f.service.ListJobsForWorker(context.Background(), "w1")
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	// The sweep persisted the derived status before the view is returned.
	assert.Equal(t, jobs.StatusLate, result[0].Job.Status)
	assert.Equal(t, jobs.StatusLate, result[0].EffectiveStatus)
	f.jobRepo.AssertExpectations(t)
}
