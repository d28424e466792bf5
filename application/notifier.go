package application

import (
	"context"
	"encoding/json"
	"time"

	"fieldops/domain/contracts"
	"fieldops/domain/events"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
	"fieldops/logging"
)

// EventPublisher publishes lifecycle domain events.
type EventPublisher interface {
	PublishJobStatusChanged(event events.JobStatusChangedEvent)
	PublishJobAssigned(event events.JobAssignedEvent)
	PublishJobCheckedOut(event events.JobCheckedOutEvent)
	PublishSweepCompleted(event events.SweepCompletedEvent)
}

// LifecycleNotifier is the side-effect boundary of the lifecycle engine:
// every persisted status change flows through it, producing one append-only
// audit trail entry and one domain event. Manual overrides are always
// audited here; there is no silent override path.
type LifecycleNotifier struct {
	eventLog contracts.EventLogRepository
	bus      EventPublisher
	logger   *logging.Logger
}

// NewLifecycleNotifier creates a notifier over the audit log and event bus.
func NewLifecycleNotifier(eventLog contracts.EventLogRepository, bus EventPublisher) *LifecycleNotifier {
	return &LifecycleNotifier{
		eventLog: eventLog,
		bus:      bus,
		logger:   logging.Default().WithComponent("lifecycle_notifier"),
	}
}

type statusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Action    string `json:"action,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// NotifyStatusChanged records a persisted status change caused by a manual
// action. Manual overrides get their own event type with an explicit reason.
func (n *LifecycleNotifier) NotifyStatusChanged(ctx context.Context, jobID string, oldStatus, newStatus jobs.JobStatus, action lifecycle.Action, actor lifecycle.Actor, at time.Time) error {
	eventType := contracts.EventTypeStatusChanged
	payload := statusChangedPayload{
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		Action:    string(action),
		ActorID:   actor.ID,
	}
	if action == lifecycle.ActionManualOverride {
		eventType = contracts.EventTypeManualOverride
		payload.Reason = "manual override"
	}

	if err := n.append(ctx, jobID, eventType, payload, at); err != nil {
		return err
	}

	if n.bus != nil {
		n.bus.PublishJobStatusChanged(events.JobStatusChangedEvent{
			JobID:     jobID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Action:    action,
			ActorID:   actor.ID,
			Timestamp: at,
		})
	}
	return nil
}

// NotifyAssigned records a scheduling/assignment change.
func (n *LifecycleNotifier) NotifyAssigned(ctx context.Context, jobID string, plannedDate time.Time, workerIDs []string, at time.Time) error {
	payload := struct {
		PlannedDate time.Time `json:"planned_date"`
		WorkerIDs   []string  `json:"worker_ids"`
	}{plannedDate, workerIDs}

	if err := n.append(ctx, jobID, contracts.EventTypeStatusChanged, payload, at); err != nil {
		return err
	}

	if n.bus != nil {
		n.bus.PublishJobAssigned(events.JobAssignedEvent{
			JobID:       jobID,
			PlannedDate: plannedDate,
			WorkerIDs:   workerIDs,
			Timestamp:   at,
		})
	}
	return nil
}

// NotifyCheckedOut records a worker's closing report (complete or
// mark-incomplete).
func (n *LifecycleNotifier) NotifyCheckedOut(ctx context.Context, jobID string, status jobs.JobStatus, actor lifecycle.Actor, note string, at time.Time) error {
	payload := struct {
		Status  string `json:"status"`
		ActorID string `json:"actor_id,omitempty"`
		Note    string `json:"note,omitempty"`
	}{string(status), actor.ID, note}

	if err := n.append(ctx, jobID, contracts.EventTypeCheckout, payload, at); err != nil {
		return err
	}

	if n.bus != nil {
		n.bus.PublishJobCheckedOut(events.JobCheckedOutEvent{
			JobID:     jobID,
			Status:    status,
			ActorID:   actor.ID,
			Note:      note,
			Timestamp: at,
		})
	}
	return nil
}

// NotifySweepChange records one automatic status write of the lateness
// sweep.
func (n *LifecycleNotifier) NotifySweepChange(ctx context.Context, change lifecycle.StatusChange, at time.Time) error {
	payload := statusChangedPayload{
		OldStatus: string(change.OldStatus),
		NewStatus: string(change.NewStatus),
	}

	if err := n.append(ctx, change.JobID, contracts.EventTypeSweep, payload, at); err != nil {
		return err
	}

	if n.bus != nil {
		n.bus.PublishJobStatusChanged(events.JobStatusChangedEvent{
			JobID:     change.JobID,
			OldStatus: change.OldStatus,
			NewStatus: change.NewStatus,
			Timestamp: at,
		})
	}
	return nil
}

// NotifySweepCompleted publishes the summary of one sweep run.
func (n *LifecycleNotifier) NotifySweepCompleted(applied []lifecycle.StatusChange, failedIDs []string, at time.Time) {
	if n.bus == nil {
		return
	}
	n.bus.PublishSweepCompleted(events.SweepCompletedEvent{
		Applied:   applied,
		FailedIDs: failedIDs,
		Timestamp: at,
	})
}

func (n *LifecycleNotifier) append(ctx context.Context, jobID, eventType string, payload any, at time.Time) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := n.eventLog.Append(ctx, jobID, eventType, string(data), at); err != nil {
		n.logger.LifecycleError("Failed to append audit event", err, jobID)
		return err
	}
	return nil
}
