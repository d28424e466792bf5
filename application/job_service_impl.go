package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fieldops/domain/contracts"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
	"fieldops/logging"
)

// JobServiceImpl implements JobService over the job repository, the
// transition validator and the lifecycle services.
type JobServiceImpl struct {
	jobRepo   contracts.JobRepository
	orderRepo contracts.JobOrderRepository
	eventLog  contracts.EventLogRepository
	validator *lifecycle.TransitionValidator
	sync      *LifecycleService
	notifier  *LifecycleNotifier
	clock     lifecycle.Clock
	logger    *logging.Logger
}

// NewJobService creates the job management service.
func NewJobService(
	jobRepo contracts.JobRepository,
	orderRepo contracts.JobOrderRepository,
	eventLog contracts.EventLogRepository,
	validator *lifecycle.TransitionValidator,
	sync *LifecycleService,
	notifier *LifecycleNotifier,
	clock lifecycle.Clock,
) JobService {
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	return &JobServiceImpl{
		jobRepo:   jobRepo,
		orderRepo: orderRepo,
		eventLog:  eventLog,
		validator: validator,
		sync:      sync,
		notifier:  notifier,
		clock:     clock,
		logger:    logging.Default().WithComponent("job_service"),
	}
}

// CreateJob creates a job under an existing order. New jobs always start in
// the awaiting-schedule status regardless of caller input.
func (s *JobServiceImpl) CreateJob(ctx context.Context, params NewJobParams) (*jobs.Job, error) {
	if !params.Type.IsValid() {
		return nil, fmt.Errorf("invalid job type %q", params.Type)
	}
	if _, err := s.orderRepo.GetOrder(ctx, params.OrderID); err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", params.OrderID, err)
	}

	now := s.clock.Now()
	job := &jobs.Job{
		ID:              uuid.NewString(),
		OrderID:         params.OrderID,
		Type:            params.Type,
		Status:          jobs.StatusAwaitingSchedule,
		PlannedDate:     params.PlannedDate,
		Notes:           params.Notes,
		NotesBackoffice: params.NotesBackoffice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.jobRepo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.Lifecycle("Job created", job.ID,
		"order_id", job.OrderID,
		"job_type", string(job.Type))
	return job, nil
}

// GetJob loads a job together with its derived effective status. The stored
// status is left untouched; only the sweep persists derived values.
func (s *JobServiceImpl) GetJob(ctx context.Context, jobID string) (*JobWithStatus, error) {
	job, err := s.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.withEffectiveStatus(job), nil
}

// GetJobEvents returns the job's audit trail in append order.
func (s *JobServiceImpl) GetJobEvents(ctx context.Context, jobID string) ([]*contracts.JobEvent, error) {
	if _, err := s.jobRepo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	return s.eventLog.ListForJob(ctx, jobID)
}

// RequestTransition runs the validate-persist-notify pipeline for one manual
// action. The returned job is the authoritative post-write row.
func (s *JobServiceImpl) RequestTransition(ctx context.Context, jobID string, action lifecycle.Action, payload lifecycle.TransitionPayload, actor lifecycle.Actor) (*JobWithStatus, error) {
	job, err := s.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	oldStatus := job.Status

	patch, err := s.validator.RequestTransition(job, action, payload, actor)
	if err != nil {
		return nil, err
	}

	updated, err := s.jobRepo.ApplyPatch(ctx, jobID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to apply transition %s: %w", action, err)
	}

	now := s.clock.Now()
	if err := s.notifier.NotifyStatusChanged(ctx, jobID, oldStatus, updated.Status, action, actor, now); err != nil {
		// The write already happened; surface the audit gap in the logs
		// without failing the request.
		s.logger.LifecycleError("Transition applied but audit append failed", err, jobID)
	}

	switch action {
	case lifecycle.ActionAssign, lifecycle.ActionForceAssign:
		if patch.SetPlannedDate && patch.PlannedDate != nil {
			if err := s.notifier.NotifyAssigned(ctx, jobID, *patch.PlannedDate, patch.Workers, now); err != nil {
				s.logger.LifecycleError("Failed to record assignment event", err, jobID)
			}
		}
	case lifecycle.ActionComplete, lifecycle.ActionMarkIncomplete:
		if err := s.notifier.NotifyCheckedOut(ctx, jobID, updated.Status, actor, payload.Note, now); err != nil {
			s.logger.LifecycleError("Failed to record checkout event", err, jobID)
		}
	}

	s.logger.Lifecycle("Transition applied", jobID,
		"action", string(action),
		"old_status", string(oldStatus),
		"new_status", string(updated.Status),
		"actor_id", actor.ID)
	return s.withEffectiveStatus(updated), nil
}

// DeleteJob removes a job. Jobs with checkout history are kept: the closing
// report is part of the audit trail and must stay reachable.
func (s *JobServiceImpl) DeleteJob(ctx context.Context, jobID string) error {
	if _, err := s.jobRepo.GetJob(ctx, jobID); err != nil {
		return err
	}

	checkouts, err := s.eventLog.CountForJobByType(ctx, jobID, contracts.EventTypeCheckout)
	if err != nil {
		return fmt.Errorf("failed to check checkout history: %w", err)
	}
	if checkouts > 0 {
		return contracts.ErrJobHasCheckoutEvents
	}

	if err := s.jobRepo.DeleteJob(ctx, jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	s.logger.Lifecycle("Job deleted", jobID)
	return nil
}

// ListJobsForWorker is the worker's my-jobs view. Loading it syncs the listed
// jobs so nobody acts on a stale status.
func (s *JobServiceImpl) ListJobsForWorker(ctx context.Context, workerID string) ([]*JobWithStatus, error) {
	jobList, err := s.jobRepo.ListJobs(ctx, contracts.JobFilter{WorkerID: workerID, OpenOnly: true})
	if err != nil {
		return nil, err
	}
	s.sync.SyncJobs(ctx, jobList)
	return s.withEffectiveStatuses(jobList), nil
}

// ListJobsForOrder lists every job of an order, open or closed.
func (s *JobServiceImpl) ListJobsForOrder(ctx context.Context, orderID string) ([]*JobWithStatus, error) {
	jobList, err := s.jobRepo.ListJobs(ctx, contracts.JobFilter{OrderID: orderID})
	if err != nil {
		return nil, err
	}
	return s.withEffectiveStatuses(jobList), nil
}

func (s *JobServiceImpl) withEffectiveStatus(job *jobs.Job) *JobWithStatus {
	return &JobWithStatus{
		Job:             job,
		EffectiveStatus: s.sync.Resolver().ResolveJob(job, s.clock.Now()),
	}
}

func (s *JobServiceImpl) withEffectiveStatuses(jobList []*jobs.Job) []*JobWithStatus {
	now := s.clock.Now()
	result := make([]*JobWithStatus, 0, len(jobList))
	for _, job := range jobList {
		result = append(result, &JobWithStatus{
			Job:             job,
			EffectiveStatus: s.sync.Resolver().ResolveJob(job, now),
		})
	}
	return result
}
