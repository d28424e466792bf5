package repositories

import (
	"context"
	"database/sql"
	"time"

	"fieldops/database"
	"fieldops/domain/contracts"
)

// SqliteEventLogRepository implements the append-only audit trail.
type SqliteEventLogRepository struct {
	*BaseRepository
}

// NewSqliteEventLogRepository creates a new event log repository.
func NewSqliteEventLogRepository(db *database.Database) contracts.EventLogRepository {
	return &SqliteEventLogRepository{BaseRepository: NewBaseRepository(db)}
}

// Append inserts one audit trail row. Rows are never updated or deleted.
func (r *SqliteEventLogRepository) Append(ctx context.Context, jobID, eventType, payload string, at time.Time) error {
	_, err := r.WriteDB().ExecContext(ctx,
		`INSERT INTO job_events (job_id, event_type, payload, created_at) VALUES (?, ?, ?, ?)`,
		jobID, eventType, r.ToNullString(payload), at)
	return err
}

// ListForJob retrieves a job's audit trail in append order.
func (r *SqliteEventLogRepository) ListForJob(ctx context.Context, jobID string) ([]*contracts.JobEvent, error) {
	rows, err := r.ReadDB().QueryContext(ctx,
		`SELECT event_id, job_id, event_type, payload, created_at
		 FROM job_events WHERE job_id = ? ORDER BY event_id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eventList []*contracts.JobEvent
	for rows.Next() {
		var (
			event   contracts.JobEvent
			payload sql.NullString
		)
		if err := rows.Scan(&event.ID, &event.JobID, &event.Type, &payload, &event.CreatedAt); err != nil {
			return nil, err
		}
		event.Payload = r.FromNullString(payload)
		eventList = append(eventList, &event)
	}
	return eventList, rows.Err()
}

// CountForJobByType counts a job's audit rows of one type.
func (r *SqliteEventLogRepository) CountForJobByType(ctx context.Context, jobID, eventType string) (int, error) {
	var count int
	err := r.ReadDB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM job_events WHERE job_id = ? AND event_type = ?`,
		jobID, eventType).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
