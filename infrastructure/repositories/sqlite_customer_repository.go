package repositories

import (
	"context"
	"database/sql"

	"fieldops/database"
	"fieldops/domain/contracts"
	"fieldops/domain/fieldwork"
)

// SqliteCustomerRepository implements contracts.CustomerRepository.
type SqliteCustomerRepository struct {
	*BaseRepository
}

// NewSqliteCustomerRepository creates a new customer repository.
func NewSqliteCustomerRepository(db *database.Database) contracts.CustomerRepository {
	return &SqliteCustomerRepository{BaseRepository: NewBaseRepository(db)}
}

// GetCustomer retrieves a single customer by ID.
func (r *SqliteCustomerRepository) GetCustomer(ctx context.Context, customerID string) (*fieldwork.Customer, error) {
	row := r.ReadDB().QueryRowContext(ctx,
		`SELECT customer_id, name, address, phone, created_at FROM customers WHERE customer_id = ?`,
		customerID)

	customer, err := r.scanCustomer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contracts.ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}

// ListCustomers retrieves all customers ordered by name.
func (r *SqliteCustomerRepository) ListCustomers(ctx context.Context) ([]*fieldwork.Customer, error) {
	rows, err := r.ReadDB().QueryContext(ctx,
		`SELECT customer_id, name, address, phone, created_at FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*fieldwork.Customer
	for rows.Next() {
		customer, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// CreateCustomer inserts a new customer.
func (r *SqliteCustomerRepository) CreateCustomer(ctx context.Context, customer *fieldwork.Customer) error {
	_, err := r.WriteDB().ExecContext(ctx,
		`INSERT INTO customers (customer_id, name, address, phone, created_at) VALUES (?, ?, ?, ?, ?)`,
		customer.ID, customer.Name,
		r.ToNullString(customer.Address), r.ToNullString(customer.Phone),
		customer.CreatedAt)
	return err
}

func (r *SqliteCustomerRepository) scanCustomer(s scanner) (*fieldwork.Customer, error) {
	var (
		customer       fieldwork.Customer
		address, phone sql.NullString
	)
	if err := s.Scan(&customer.ID, &customer.Name, &address, &phone, &customer.CreatedAt); err != nil {
		return nil, err
	}
	customer.Address = r.FromNullString(address)
	customer.Phone = r.FromNullString(phone)
	return &customer, nil
}
