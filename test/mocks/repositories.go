package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fieldops/domain/contracts"
	"fieldops/domain/fieldwork"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
)

// MockJobRepository implements JobRepository for testing
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) GetJob(ctx context.Context, jobID string) (*jobs.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobs.Job), args.Error(1)
}

func (m *MockJobRepository) ListJobs(ctx context.Context, filter contracts.JobFilter) ([]*jobs.Job, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobs.Job), args.Error(1)
}

func (m *MockJobRepository) CreateJob(ctx context.Context, job *jobs.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) ApplyPatch(ctx context.Context, jobID string, patch *lifecycle.JobPatch) (*jobs.Job, error) {
	args := m.Called(ctx, jobID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobs.Job), args.Error(1)
}

func (m *MockJobRepository) DeleteJob(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockJobRepository) CountJobsForOrder(ctx context.Context, orderID string) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

// MockOrderRepository implements JobOrderRepository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetOrder(ctx context.Context, orderID string) (*fieldwork.JobOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fieldwork.JobOrder), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context) ([]*fieldwork.JobOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fieldwork.JobOrder), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*fieldwork.JobOrder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fieldwork.JobOrder), args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *fieldwork.JobOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderNotes(ctx context.Context, orderID, notes string) error {
	args := m.Called(ctx, orderID, notes)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockCustomerRepository implements CustomerRepository for testing
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetCustomer(ctx context.Context, customerID string) (*fieldwork.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fieldwork.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context) ([]*fieldwork.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fieldwork.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CreateCustomer(ctx context.Context, customer *fieldwork.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockWorkerRepository implements WorkerRepository for testing
type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) GetWorker(ctx context.Context, workerID string) (*fieldwork.Worker, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fieldwork.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListWorkers(ctx context.Context) ([]*fieldwork.Worker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fieldwork.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListWorkersByIDs(ctx context.Context, ids []string) ([]*fieldwork.Worker, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fieldwork.Worker), args.Error(1)
}

func (m *MockWorkerRepository) CreateWorker(ctx context.Context, worker *fieldwork.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

// MockPaymentRepository implements PaymentRepository for testing
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) AddPayment(ctx context.Context, payment *jobs.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListPaymentsByJob(ctx context.Context, jobID string) ([]*jobs.Payment, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobs.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByJobs(ctx context.Context, jobIDs []string) ([]*jobs.Payment, error) {
	args := m.Called(ctx, jobIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobs.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByOrder(ctx context.Context, orderID string) ([]*jobs.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobs.Payment), args.Error(1)
}

// MockEventLogRepository implements EventLogRepository for testing
type MockEventLogRepository struct {
	mock.Mock
}

func (m *MockEventLogRepository) Append(ctx context.Context, jobID, eventType, payload string, at time.Time) error {
	args := m.Called(ctx, jobID, eventType, payload, at)
	return args.Error(0)
}

func (m *MockEventLogRepository) ListForJob(ctx context.Context, jobID string) ([]*contracts.JobEvent, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contracts.JobEvent), args.Error(1)
}

func (m *MockEventLogRepository) CountForJobByType(ctx context.Context, jobID, eventType string) (int, error) {
	args := m.Called(ctx, jobID, eventType)
	return args.Int(0), args.Error(1)
}
