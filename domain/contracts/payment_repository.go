package contracts

import (
	"context"

	"fieldops/domain/jobs"
)

// PaymentRepository defines persistence for payment rows.
type PaymentRepository interface {
	AddPayment(ctx context.Context, payment *jobs.Payment) error
	ListPaymentsByJob(ctx context.Context, jobID string) ([]*jobs.Payment, error)
	ListPaymentsByJobs(ctx context.Context, jobIDs []string) ([]*jobs.Payment, error)
	ListPaymentsByOrder(ctx context.Context, orderID string) ([]*jobs.Payment, error)
}
