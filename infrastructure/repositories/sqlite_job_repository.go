package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fieldops/database"
	"fieldops/domain/contracts"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
)

// SqliteJobRepository implements contracts.JobRepository with read/write
// connection separation. Worker assignments live in the job_workers join
// table and are loaded with every job row.
type SqliteJobRepository struct {
	*BaseRepository
}

// NewSqliteJobRepository creates a new job repository.
func NewSqliteJobRepository(db *database.Database) contracts.JobRepository {
	return &SqliteJobRepository{BaseRepository: NewBaseRepository(db)}
}

const jobColumns = `job_id, order_id, job_type, status, planned_date, notes, notes_backoffice, created_at, updated_at`

// GetJob retrieves a single job by ID with its assignment set.
func (r *SqliteJobRepository) GetJob(ctx context.Context, jobID string) (*jobs.Job, error) {
	row := r.ReadDB().QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE job_id = ?`, jobID)

	job, err := r.scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contracts.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadWorkers(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobs retrieves jobs matching the filter, ordered by planned date with
// unscheduled jobs last.
func (r *SqliteJobRepository) ListJobs(ctx context.Context, filter contracts.JobFilter) ([]*jobs.Job, error) {
	query := `SELECT ` + prefixColumns("j.", jobColumns) + ` FROM jobs j`
	var conds []string
	var args []any

	if filter.WorkerID != "" {
		query += ` JOIN job_workers jw ON jw.job_id = j.job_id`
		conds = append(conds, `jw.worker_id = ?`)
		args = append(args, filter.WorkerID)
	}
	if filter.OrderID != "" {
		conds = append(conds, `j.order_id = ?`)
		args = append(args, filter.OrderID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Statuses)), ",")
		conds = append(conds, `j.status IN (`+placeholders+`)`)
		for _, s := range filter.Statuses {
			args = append(args, string(s))
		}
	}
	if filter.OpenOnly {
		conds = append(conds, `j.status NOT IN (?, ?, ?)`)
		args = append(args,
			string(jobs.StatusCompleted),
			string(jobs.StatusIncomplete),
			string(jobs.StatusCancelled))
	}
	if filter.UnscheduledOnly {
		conds = append(conds, `j.planned_date IS NULL`)
	}
	if filter.PlannedFrom != nil {
		conds = append(conds, `j.planned_date >= ?`)
		args = append(args, *filter.PlannedFrom)
	}
	if filter.PlannedTo != nil {
		conds = append(conds, `j.planned_date < ?`)
		args = append(args, *filter.PlannedTo)
	}

	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY j.planned_date IS NULL, j.planned_date, j.created_at`

	rows, err := r.ReadDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobList []*jobs.Job
	for rows.Next() {
		job, err := r.scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobList = append(jobList, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, job := range jobList {
		if err := r.loadWorkers(ctx, job); err != nil {
			return nil, err
		}
	}
	return jobList, nil
}

// CreateJob inserts a new job and its assignment rows.
func (r *SqliteJobRepository) CreateJob(ctx context.Context, job *jobs.Job) error {
	return r.WithTx(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO jobs (job_id, order_id, job_type, status, planned_date, notes, notes_backoffice, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			job.ID, job.OrderID, string(job.Type), string(job.Status),
			r.ToNullTime(job.PlannedDate),
			r.ToNullString(job.Notes), r.ToNullString(job.NotesBackoffice),
			job.CreatedAt, job.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert job: %w", err)
		}
		return r.insertWorkers(ctx, tx, job.ID, job.AssignedWorkers)
	})
}

// ApplyPatch writes only the fields the patch sets and returns the
// authoritative post-write row.
func (r *SqliteJobRepository) ApplyPatch(ctx context.Context, jobID string, patch *lifecycle.JobPatch) (*jobs.Job, error) {
	err := r.WithTx(func(tx *sql.Tx) error {
		sets := []string{`status = ?`, `updated_at = ?`}
		args := []any{string(patch.Status), time.Now()}

		if patch.SetPlannedDate {
			sets = append(sets, `planned_date = ?`)
			args = append(args, r.ToNullTime(patch.PlannedDate))
		}

		args = append(args, jobID)
		res, err := tx.ExecContext(ctx,
			`UPDATE jobs SET `+strings.Join(sets, ", ")+` WHERE job_id = ?`, args...)
		if err != nil {
			return fmt.Errorf("failed to patch job: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return contracts.ErrNotFound
		}

		if patch.SetWorkers {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM job_workers WHERE job_id = ?`, jobID); err != nil {
				return fmt.Errorf("failed to clear assignments: %w", err)
			}
			return r.insertWorkers(ctx, tx, jobID, patch.Workers)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetJob(ctx, jobID)
}

// DeleteJob removes a job and its assignment rows.
func (r *SqliteJobRepository) DeleteJob(ctx context.Context, jobID string) error {
	return r.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM job_workers WHERE job_id = ?`, jobID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE job_id = ?`, jobID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return contracts.ErrNotFound
		}
		return nil
	})
}

// CountJobsForOrder returns how many jobs reference the order.
func (r *SqliteJobRepository) CountJobsForOrder(ctx context.Context, orderID string) (int, error) {
	var count int
	err := r.ReadDB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jobs WHERE order_id = ?`, orderID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func (r *SqliteJobRepository) scanJob(s scanner) (*jobs.Job, error) {
	var (
		job             jobs.Job
		jobType, status string
		plannedDate     sql.NullTime
		notes, backoff  sql.NullString
	)
	if err := s.Scan(&job.ID, &job.OrderID, &jobType, &status, &plannedDate,
		&notes, &backoff, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}
	job.Type = jobs.JobType(jobType)
	job.Status = jobs.JobStatus(status)
	job.PlannedDate = r.FromNullTime(plannedDate)
	job.Notes = r.FromNullString(notes)
	job.NotesBackoffice = r.FromNullString(backoff)
	return &job, nil
}

func (r *SqliteJobRepository) loadWorkers(ctx context.Context, job *jobs.Job) error {
	rows, err := r.ReadDB().QueryContext(ctx,
		`SELECT worker_id FROM job_workers WHERE job_id = ? ORDER BY worker_id`, job.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var workerID string
		if err := rows.Scan(&workerID); err != nil {
			return err
		}
		job.AssignedWorkers = append(job.AssignedWorkers, workerID)
	}
	return rows.Err()
}

func (r *SqliteJobRepository) insertWorkers(ctx context.Context, tx *sql.Tx, jobID string, workerIDs []string) error {
	for _, workerID := range workerIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO job_workers (job_id, worker_id) VALUES (?, ?)`,
			jobID, workerID); err != nil {
			return fmt.Errorf("failed to insert assignment %s/%s: %w", jobID, workerID, err)
		}
	}
	return nil
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(prefix, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, ", ")
}
