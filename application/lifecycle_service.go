package application

import (
	"context"
	"time"

	"fieldops/domain/contracts"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
	"fieldops/logging"
)

// SyncFailure is one job whose sweep write failed.
type SyncFailure struct {
	JobID string
	Err   error
}

// SyncReport is the result of one sweep run. Jobs in Failed keep their
// stale-but-correct-at-last-read status on screen.
type SyncReport struct {
	Applied []lifecycle.StatusChange
	Failed  []SyncFailure
}

// LifecycleService runs the automatic status sweep: it writes back the
// effective status of every open job whose resolver output differs from the
// persisted value. Runs whenever a scheduling view loads its job list, and
// periodically in the background.
type LifecycleService struct {
	jobRepo  contracts.JobRepository
	resolver *lifecycle.StatusResolver
	notifier *LifecycleNotifier
	clock    lifecycle.Clock
	logger   *logging.Logger
}

// NewLifecycleService creates the sweep service.
func NewLifecycleService(
	jobRepo contracts.JobRepository,
	resolver *lifecycle.StatusResolver,
	notifier *LifecycleNotifier,
	clock lifecycle.Clock,
) *LifecycleService {
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	return &LifecycleService{
		jobRepo:  jobRepo,
		resolver: resolver,
		notifier: notifier,
		clock:    clock,
		logger:   logging.Default().WithComponent("lifecycle_service"),
	}
}

// Resolver exposes the shared status resolver for render-time derivation.
func (s *LifecycleService) Resolver() *lifecycle.StatusResolver {
	return s.resolver
}

// SweepAll loads every open job and syncs it.
func (s *LifecycleService) SweepAll(ctx context.Context) (*SyncReport, error) {
	jobList, err := s.jobRepo.ListJobs(ctx, contracts.JobFilter{OpenOnly: true})
	if err != nil {
		return nil, err
	}
	return s.SyncJobs(ctx, jobList), nil
}

// SyncJobs persists the pending status changes for an already-loaded job
// list. Each write is independent: a failure is recorded and the sweep
// continues with the remaining jobs. Re-running with the same clock instant
// produces no further changes.
func (s *LifecycleService) SyncJobs(ctx context.Context, jobList []*jobs.Job) *SyncReport {
	now := s.clock.Now()
	changes := lifecycle.PendingChanges(s.resolver, jobList, now)

	report := &SyncReport{}
	for _, change := range changes {
		patch := &lifecycle.JobPatch{Status: change.NewStatus}
		if _, err := s.jobRepo.ApplyPatch(ctx, change.JobID, patch); err != nil {
			s.logger.LifecycleError("Sweep write failed, continuing", err, change.JobID)
			report.Failed = append(report.Failed, SyncFailure{JobID: change.JobID, Err: err})
			continue
		}

		report.Applied = append(report.Applied, change)

		// Audit failures don't undo the applied write.
		if err := s.notifier.NotifySweepChange(ctx, change, now); err != nil {
			s.logger.LifecycleError("Failed to record sweep event", err, change.JobID)
		}

		// Keep the in-memory snapshot consistent for the caller's view.
		for _, job := range jobList {
			if job.ID == change.JobID {
				job.Status = change.NewStatus
				break
			}
		}
	}

	if len(report.Applied) > 0 || len(report.Failed) > 0 {
		failedIDs := make([]string, 0, len(report.Failed))
		for _, f := range report.Failed {
			failedIDs = append(failedIDs, f.JobID)
		}
		s.notifier.NotifySweepCompleted(report.Applied, failedIDs, now)
		s.logger.Sweep("Lateness sweep applied",
			"applied", len(report.Applied),
			"failed", len(report.Failed))
	}

	return report
}

// Now exposes the service clock, so callers bucket agenda views with the
// same instant the sweep used.
func (s *LifecycleService) Now() time.Time {
	return s.clock.Now()
}
