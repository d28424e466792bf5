package repositories

import (
	"context"
	"database/sql"
	"strings"

	"fieldops/database"
	"fieldops/domain/contracts"
	"fieldops/domain/fieldwork"
)

// SqliteWorkerRepository implements contracts.WorkerRepository.
type SqliteWorkerRepository struct {
	*BaseRepository
}

// NewSqliteWorkerRepository creates a new worker repository.
func NewSqliteWorkerRepository(db *database.Database) contracts.WorkerRepository {
	return &SqliteWorkerRepository{BaseRepository: NewBaseRepository(db)}
}

const workerColumns = `worker_id, name, phone, user_account_id`

// GetWorker retrieves a single worker by ID.
func (r *SqliteWorkerRepository) GetWorker(ctx context.Context, workerID string) (*fieldwork.Worker, error) {
	row := r.ReadDB().QueryRowContext(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE worker_id = ?`, workerID)

	worker, err := r.scanWorker(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contracts.ErrNotFound
		}
		return nil, err
	}
	return worker, nil
}

// ListWorkers retrieves all workers ordered by name.
func (r *SqliteWorkerRepository) ListWorkers(ctx context.Context) ([]*fieldwork.Worker, error) {
	return r.listWorkers(ctx,
		`SELECT `+workerColumns+` FROM workers ORDER BY name`)
}

// ListWorkersByIDs resolves the given worker IDs. Unknown IDs are silently
// absent from the result.
func (r *SqliteWorkerRepository) ListWorkersByIDs(ctx context.Context, ids []string) ([]*fieldwork.Worker, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	return r.listWorkers(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE worker_id IN (`+placeholders+`) ORDER BY name`,
		args...)
}

// CreateWorker inserts a new worker.
func (r *SqliteWorkerRepository) CreateWorker(ctx context.Context, worker *fieldwork.Worker) error {
	_, err := r.WriteDB().ExecContext(ctx,
		`INSERT INTO workers (worker_id, name, phone, user_account_id) VALUES (?, ?, ?, ?)`,
		worker.ID, worker.Name,
		r.ToNullString(worker.Phone), r.ToNullString(worker.UserAccountID))
	return err
}

func (r *SqliteWorkerRepository) listWorkers(ctx context.Context, query string, args ...any) ([]*fieldwork.Worker, error) {
	rows, err := r.ReadDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []*fieldwork.Worker
	for rows.Next() {
		worker, err := r.scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}
	return workers, rows.Err()
}

func (r *SqliteWorkerRepository) scanWorker(s scanner) (*fieldwork.Worker, error) {
	var (
		worker         fieldwork.Worker
		phone, account sql.NullString
	)
	if err := s.Scan(&worker.ID, &worker.Name, &phone, &account); err != nil {
		return nil, err
	}
	worker.Phone = r.FromNullString(phone)
	worker.UserAccountID = r.FromNullString(account)
	return &worker, nil
}
