// Package sweep runs the background lateness sweep on a cron schedule.
package sweep

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"fieldops/application"
	"fieldops/logging"
)

// Scheduler periodically runs the full status sweep so jobs go late even when
// nobody has a scheduling view open.
type Scheduler struct {
	lifecycle *application.LifecycleService
	schedule  string
	cron      *cron.Cron
	logger    *logging.Logger
}

// NewScheduler creates a sweep scheduler. schedule is a cron expression
// (descriptors like "@every 5m" accepted); empty disables scheduling.
func NewScheduler(lifecycle *application.LifecycleService, schedule string) *Scheduler {
	return &Scheduler{
		lifecycle: lifecycle,
		schedule:  schedule,
		logger:    logging.Default().WithComponent("sweep_scheduler"),
	}
}

// Start registers the sweep job and starts the cron loop. No-op when the
// schedule is empty.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("Background sweep disabled")
		return nil
	}

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
		cron.Recover(cron.DiscardLogger),
	))
	if _, err := c.AddFunc(s.schedule, s.run); err != nil {
		return err
	}

	s.cron = c
	c.Start()
	s.logger.Info("Background sweep started", "schedule", s.schedule)
	return nil
}

// Stop stops the cron loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for sweep to finish")
	}
}

func (s *Scheduler) run() {
	start := time.Now()
	report, err := s.lifecycle.SweepAll(context.Background())
	if err != nil {
		s.logger.Error("Scheduled sweep failed", "error", err.Error())
		return
	}
	s.logger.Performance("scheduled_sweep", time.Since(start),
		"applied", len(report.Applied),
		"failed", len(report.Failed))
}
