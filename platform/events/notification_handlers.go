package events

import (
	"fieldops/domain/events"
	"fieldops/logging"
)

// NotificationEventHandlers consumes lifecycle events for operator-facing
// notifications. Currently the sink is the structured log; a push channel can
// subscribe the same way.
type NotificationEventHandlers struct {
	logger *logging.Logger
}

// NewNotificationEventHandlers creates the notification event handlers.
func NewNotificationEventHandlers() *NotificationEventHandlers {
	return &NotificationEventHandlers{
		logger: logging.Default().WithComponent("notifications"),
	}
}

// RegisterHandlers subscribes all notification handlers to the bus.
func (h *NotificationEventHandlers) RegisterHandlers(bus *LifecycleEventBus) {
	bus.OnJobStatusChanged(h.handleStatusChanged)
	bus.OnJobAssigned(h.handleAssigned)
	bus.OnJobCheckedOut(h.handleCheckedOut)
	bus.OnSweepCompleted(h.handleSweepCompleted)
}

func (h *NotificationEventHandlers) handleStatusChanged(event events.JobStatusChangedEvent) {
	h.logger.Info("Job status changed",
		"job_id", event.JobID,
		"old_status", string(event.OldStatus),
		"new_status", string(event.NewStatus),
		"action", string(event.Action),
		"actor_id", event.ActorID)
}

func (h *NotificationEventHandlers) handleAssigned(event events.JobAssignedEvent) {
	h.logger.Info("Job assigned",
		"job_id", event.JobID,
		"planned_date", event.PlannedDate,
		"workers", len(event.WorkerIDs))
}

func (h *NotificationEventHandlers) handleCheckedOut(event events.JobCheckedOutEvent) {
	h.logger.Info("Job checked out",
		"job_id", event.JobID,
		"status", string(event.Status),
		"actor_id", event.ActorID)
}

func (h *NotificationEventHandlers) handleSweepCompleted(event events.SweepCompletedEvent) {
	if len(event.Applied) == 0 && len(event.FailedIDs) == 0 {
		return
	}
	h.logger.Info("Sweep completed",
		"applied", len(event.Applied),
		"failed", len(event.FailedIDs))
}
