package application

import (
	"context"
	"time"

	"fieldops/domain/contracts"
	"fieldops/domain/fieldwork"
	"fieldops/domain/lifecycle"
	"fieldops/logging"
)

// AgendaDay is one day bucket of the weekly agenda.
type AgendaDay struct {
	Date time.Time
	Jobs []*JobWithStatus
}

// AgendaWeek is the scheduling view for one calendar week: seven day buckets
// plus the unscheduled backlog awaiting a date.
type AgendaWeek struct {
	Window      lifecycle.Window
	Days        []AgendaDay
	Unscheduled []*JobWithStatus
	Workers     []*fieldwork.Worker
}

// AgendaService builds the weekly scheduling view.
type AgendaService interface {
	// WeekView returns the agenda for the week containing ref. Loading the
	// view runs the status sweep over the listed jobs first, so the statuses
	// the planner sees are already persisted.
	WeekView(ctx context.Context, ref time.Time) (*AgendaWeek, error)
}

// AgendaServiceImpl implements AgendaService.
type AgendaServiceImpl struct {
	jobRepo    contracts.JobRepository
	workerRepo contracts.WorkerRepository
	sync       *LifecycleService
	location   *time.Location
	logger     *logging.Logger
}

// NewAgendaService creates the agenda service. loc is the calendar timezone
// used for week boundaries.
func NewAgendaService(
	jobRepo contracts.JobRepository,
	workerRepo contracts.WorkerRepository,
	sync *LifecycleService,
	loc *time.Location,
) AgendaService {
	if loc == nil {
		loc = time.Local
	}
	return &AgendaServiceImpl{
		jobRepo:    jobRepo,
		workerRepo: workerRepo,
		sync:       sync,
		location:   loc,
		logger:     logging.Default().WithComponent("agenda_service"),
	}
}

// WeekView loads the week's scheduled jobs and the unscheduled backlog,
// syncs the scheduled ones, and buckets them by day.
func (s *AgendaServiceImpl) WeekView(ctx context.Context, ref time.Time) (*AgendaWeek, error) {
	window := lifecycle.WeekOf(ref, s.location)

	scheduled, err := s.jobRepo.ListJobs(ctx, contracts.JobFilter{
		PlannedFrom: &window.Start,
		PlannedTo:   &window.End,
	})
	if err != nil {
		return nil, err
	}

	// Jobs without a date never trip the lateness rules, so the backlog only
	// needs loading, not syncing.
	backlog, err := s.jobRepo.ListJobs(ctx, contracts.JobFilter{
		UnscheduledOnly: true,
		OpenOnly:        true,
	})
	if err != nil {
		return nil, err
	}

	workerList, err := s.workerRepo.ListWorkers(ctx)
	if err != nil {
		return nil, err
	}

	s.sync.SyncJobs(ctx, scheduled)
	now := s.sync.Now()
	resolver := s.sync.Resolver()

	week := &AgendaWeek{Window: window, Workers: workerList}
	for _, day := range window.Days() {
		week.Days = append(week.Days, AgendaDay{Date: day})
	}
	for _, job := range scheduled {
		if job.PlannedDate == nil {
			continue
		}
		idx := window.DayIndex(*job.PlannedDate)
		if idx < 0 {
			continue
		}
		week.Days[idx].Jobs = append(week.Days[idx].Jobs, &JobWithStatus{
			Job:             job,
			EffectiveStatus: resolver.ResolveJob(job, now),
		})
	}
	for _, job := range backlog {
		week.Unscheduled = append(week.Unscheduled, &JobWithStatus{
			Job:             job,
			EffectiveStatus: job.Status,
		})
	}

	s.logger.Debug("Agenda week built",
		"week_start", window.Start.Format("2006-01-02"),
		"scheduled", len(scheduled),
		"unscheduled", len(backlog))
	return week, nil
}
