package repositories

import (
	"context"
	"database/sql"
	"strings"

	"fieldops/database"
	"fieldops/domain/contracts"
	"fieldops/domain/jobs"
)

// SqlitePaymentRepository implements contracts.PaymentRepository.
type SqlitePaymentRepository struct {
	*BaseRepository
}

// NewSqlitePaymentRepository creates a new payment repository.
func NewSqlitePaymentRepository(db *database.Database) contracts.PaymentRepository {
	return &SqlitePaymentRepository{BaseRepository: NewBaseRepository(db)}
}

const paymentColumns = `payment_id, job_id, amount, collected, partial, collected_amount, due_date, note, created_at`

// AddPayment inserts a new payment row.
func (r *SqlitePaymentRepository) AddPayment(ctx context.Context, payment *jobs.Payment) error {
	_, err := r.WriteDB().ExecContext(ctx,
		`INSERT INTO payments (payment_id, job_id, amount, collected, partial, collected_amount, due_date, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.JobID, payment.Amount,
		payment.Collected, payment.Partial, payment.CollectedAmount,
		r.ToNullTime(payment.DueDate), r.ToNullString(payment.Note),
		payment.CreatedAt)
	return err
}

// ListPaymentsByJob retrieves the payment rows for one job, oldest first.
func (r *SqlitePaymentRepository) ListPaymentsByJob(ctx context.Context, jobID string) ([]*jobs.Payment, error) {
	return r.listPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE job_id = ? ORDER BY created_at`, jobID)
}

// ListPaymentsByJobs retrieves the payment rows for a set of jobs.
func (r *SqlitePaymentRepository) ListPaymentsByJobs(ctx context.Context, jobIDs []string) ([]*jobs.Payment, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(jobIDs)), ",")
	args := make([]any, len(jobIDs))
	for i, id := range jobIDs {
		args[i] = id
	}

	return r.listPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE job_id IN (`+placeholders+`) ORDER BY created_at`,
		args...)
}

// ListPaymentsByOrder retrieves all payment rows of an order's jobs.
func (r *SqlitePaymentRepository) ListPaymentsByOrder(ctx context.Context, orderID string) ([]*jobs.Payment, error) {
	return r.listPayments(ctx,
		`SELECT `+prefixColumns("p.", paymentColumns)+`
		 FROM payments p JOIN jobs j ON j.job_id = p.job_id
		 WHERE j.order_id = ? ORDER BY p.created_at`, orderID)
}

func (r *SqlitePaymentRepository) listPayments(ctx context.Context, query string, args ...any) ([]*jobs.Payment, error) {
	rows, err := r.ReadDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*jobs.Payment
	for rows.Next() {
		payment, err := r.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *SqlitePaymentRepository) scanPayment(s scanner) (*jobs.Payment, error) {
	var (
		payment jobs.Payment
		dueDate sql.NullTime
		note    sql.NullString
	)
	if err := s.Scan(&payment.ID, &payment.JobID, &payment.Amount,
		&payment.Collected, &payment.Partial, &payment.CollectedAmount,
		&dueDate, &note, &payment.CreatedAt); err != nil {
		return nil, err
	}
	payment.DueDate = r.FromNullTime(dueDate)
	payment.Note = r.FromNullString(note)
	return &payment, nil
}
