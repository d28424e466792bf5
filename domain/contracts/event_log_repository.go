package contracts

import (
	"context"
	"time"
)

// Event types recorded in the append-only job audit trail.
const (
	EventTypeStatusChanged  = "status_changed"
	EventTypeManualOverride = "manual_override"
	EventTypeCheckout       = "checkout"
	EventTypeSweep          = "sweep"
)

// JobEvent is one append-only audit trail row.
type JobEvent struct {
	ID        int64
	JobID     string
	Type      string
	Payload   string
	CreatedAt time.Time
}

// EventLogRepository is the append-only audit trail. Rows are never mutated.
type EventLogRepository interface {
	Append(ctx context.Context, jobID, eventType, payload string, at time.Time) error
	ListForJob(ctx context.Context, jobID string) ([]*JobEvent, error)
	CountForJobByType(ctx context.Context, jobID, eventType string) (int, error)
}
