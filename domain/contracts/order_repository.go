package contracts

import (
	"context"

	"fieldops/domain/fieldwork"
)

// JobOrderRepository defines persistence for job orders.
type JobOrderRepository interface {
	GetOrder(ctx context.Context, orderID string) (*fieldwork.JobOrder, error)
	ListOrders(ctx context.Context) ([]*fieldwork.JobOrder, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]*fieldwork.JobOrder, error)
	CreateOrder(ctx context.Context, order *fieldwork.JobOrder) error
	UpdateOrderNotes(ctx context.Context, orderID, notes string) error

	// DeleteOrder removes an order; callers enforce the referential guard
	// (no live jobs) before invoking it.
	DeleteOrder(ctx context.Context, orderID string) error
}

// CustomerRepository defines persistence for customers.
type CustomerRepository interface {
	GetCustomer(ctx context.Context, customerID string) (*fieldwork.Customer, error)
	ListCustomers(ctx context.Context) ([]*fieldwork.Customer, error)
	CreateCustomer(ctx context.Context, customer *fieldwork.Customer) error
}
