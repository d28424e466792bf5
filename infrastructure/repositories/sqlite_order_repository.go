package repositories

import (
	"context"
	"database/sql"

	"fieldops/database"
	"fieldops/domain/contracts"
	"fieldops/domain/fieldwork"
)

// SqliteOrderRepository implements contracts.JobOrderRepository.
type SqliteOrderRepository struct {
	*BaseRepository
}

// NewSqliteOrderRepository creates a new order repository.
func NewSqliteOrderRepository(db *database.Database) contracts.JobOrderRepository {
	return &SqliteOrderRepository{BaseRepository: NewBaseRepository(db)}
}

const orderColumns = `order_id, customer_id, title, notes, created_at`

// GetOrder retrieves a single order by ID.
func (r *SqliteOrderRepository) GetOrder(ctx context.Context, orderID string) (*fieldwork.JobOrder, error) {
	row := r.ReadDB().QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM job_orders WHERE order_id = ?`, orderID)

	order, err := r.scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contracts.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListOrders retrieves all orders, newest first.
func (r *SqliteOrderRepository) ListOrders(ctx context.Context) ([]*fieldwork.JobOrder, error) {
	return r.listOrders(ctx,
		`SELECT `+orderColumns+` FROM job_orders ORDER BY created_at DESC`)
}

// ListOrdersByCustomer retrieves a customer's orders, newest first.
func (r *SqliteOrderRepository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*fieldwork.JobOrder, error) {
	return r.listOrders(ctx,
		`SELECT `+orderColumns+` FROM job_orders WHERE customer_id = ? ORDER BY created_at DESC`,
		customerID)
}

// CreateOrder inserts a new order.
func (r *SqliteOrderRepository) CreateOrder(ctx context.Context, order *fieldwork.JobOrder) error {
	_, err := r.WriteDB().ExecContext(ctx,
		`INSERT INTO job_orders (order_id, customer_id, title, notes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		order.ID, order.CustomerID, order.Title,
		r.ToNullString(order.Notes), order.CreatedAt)
	return err
}

// UpdateOrderNotes replaces the order's notes.
func (r *SqliteOrderRepository) UpdateOrderNotes(ctx context.Context, orderID, notes string) error {
	res, err := r.WriteDB().ExecContext(ctx,
		`UPDATE job_orders SET notes = ? WHERE order_id = ?`,
		r.ToNullString(notes), orderID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return contracts.ErrNotFound
	}
	return nil
}

// DeleteOrder removes an order. The no-live-jobs guard is enforced by the
// application layer before this is called.
func (r *SqliteOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	res, err := r.WriteDB().ExecContext(ctx,
		`DELETE FROM job_orders WHERE order_id = ?`, orderID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return contracts.ErrNotFound
	}
	return nil
}

func (r *SqliteOrderRepository) listOrders(ctx context.Context, query string, args ...any) ([]*fieldwork.JobOrder, error) {
	rows, err := r.ReadDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*fieldwork.JobOrder
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *SqliteOrderRepository) scanOrder(s scanner) (*fieldwork.JobOrder, error) {
	var (
		order fieldwork.JobOrder
		notes sql.NullString
	)
	if err := s.Scan(&order.ID, &order.CustomerID, &order.Title, &notes, &order.CreatedAt); err != nil {
		return nil, err
	}
	order.Notes = r.FromNullString(notes)
	return &order, nil
}
