package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fieldops/domain/contracts"
	"fieldops/domain/fieldwork"
	"fieldops/domain/lifecycle"
	"fieldops/logging"
)

// NewOrderParams are the creation parameters for a job order.
type NewOrderParams struct {
	CustomerID string
	Title      string
	Notes      string
}

// OrderService manages customers and job orders.
type OrderService interface {
	CreateCustomer(ctx context.Context, name, address, phone string) (*fieldwork.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*fieldwork.Customer, error)
	ListCustomers(ctx context.Context) ([]*fieldwork.Customer, error)

	CreateOrder(ctx context.Context, params NewOrderParams) (*fieldwork.JobOrder, error)
	GetOrder(ctx context.Context, orderID string) (*fieldwork.JobOrder, error)
	ListOrders(ctx context.Context) ([]*fieldwork.JobOrder, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]*fieldwork.JobOrder, error)
	UpdateOrderNotes(ctx context.Context, orderID, notes string) error

	// DeleteOrder removes an order only when no job references it.
	DeleteOrder(ctx context.Context, orderID string) error
}

// OrderServiceImpl implements OrderService over the customer, order and job
// repositories.
type OrderServiceImpl struct {
	customerRepo contracts.CustomerRepository
	orderRepo    contracts.JobOrderRepository
	jobRepo      contracts.JobRepository
	clock        lifecycle.Clock
	logger       *logging.Logger
}

// NewOrderService creates the order management service.
func NewOrderService(
	customerRepo contracts.CustomerRepository,
	orderRepo contracts.JobOrderRepository,
	jobRepo contracts.JobRepository,
	clock lifecycle.Clock,
) OrderService {
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	return &OrderServiceImpl{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		jobRepo:      jobRepo,
		clock:        clock,
		logger:       logging.Default().WithComponent("order_service"),
	}
}

// CreateCustomer registers a customer.
func (s *OrderServiceImpl) CreateCustomer(ctx context.Context, name, address, phone string) (*fieldwork.Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	customer := &fieldwork.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   address,
		Phone:     phone,
		CreatedAt: s.clock.Now(),
	}
	if err := s.customerRepo.CreateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// GetCustomer loads one customer.
func (s *OrderServiceImpl) GetCustomer(ctx context.Context, customerID string) (*fieldwork.Customer, error) {
	return s.customerRepo.GetCustomer(ctx, customerID)
}

// ListCustomers lists all customers.
func (s *OrderServiceImpl) ListCustomers(ctx context.Context) ([]*fieldwork.Customer, error) {
	return s.customerRepo.ListCustomers(ctx)
}

// CreateOrder opens a job order for an existing customer.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, params NewOrderParams) (*fieldwork.JobOrder, error) {
	if _, err := s.customerRepo.GetCustomer(ctx, params.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to load customer %s: %w", params.CustomerID, err)
	}

	order := &fieldwork.JobOrder{
		ID:         uuid.NewString(),
		CustomerID: params.CustomerID,
		Title:      params.Title,
		Notes:      params.Notes,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("Order created",
		"order_id", order.ID,
		"customer_id", order.CustomerID)
	return order, nil
}

// GetOrder loads one order.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, orderID string) (*fieldwork.JobOrder, error) {
	return s.orderRepo.GetOrder(ctx, orderID)
}

// ListOrders lists all orders.
func (s *OrderServiceImpl) ListOrders(ctx context.Context) ([]*fieldwork.JobOrder, error) {
	return s.orderRepo.ListOrders(ctx)
}

// ListOrdersByCustomer lists a customer's orders.
func (s *OrderServiceImpl) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*fieldwork.JobOrder, error) {
	return s.orderRepo.ListOrdersByCustomer(ctx, customerID)
}

// UpdateOrderNotes replaces an order's free-text notes.
func (s *OrderServiceImpl) UpdateOrderNotes(ctx context.Context, orderID, notes string) error {
	if _, err := s.orderRepo.GetOrder(ctx, orderID); err != nil {
		return err
	}
	return s.orderRepo.UpdateOrderNotes(ctx, orderID, notes)
}

// DeleteOrder removes an order. Orders with jobs are kept; delete or move the
// jobs first.
func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, orderID string) error {
	if _, err := s.orderRepo.GetOrder(ctx, orderID); err != nil {
		return err
	}

	count, err := s.jobRepo.CountJobsForOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to count jobs for order: %w", err)
	}
	if count > 0 {
		return contracts.ErrOrderHasJobs
	}

	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	s.logger.Info("Order deleted", "order_id", orderID)
	return nil
}
