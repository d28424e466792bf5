package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fieldops/domain/billing"
	"fieldops/domain/contracts"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
	"fieldops/logging"
)

// NewPaymentParams are the creation parameters for a payment row.
type NewPaymentParams struct {
	JobID           string
	Amount          float64
	Collected       bool
	Partial         bool
	CollectedAmount float64
	DueDate         *time.Time
	Note            string
}

// JobPayments is a job's payment rows with their aggregate.
type JobPayments struct {
	Payments []*jobs.Payment
	Summary  billing.Summary
}

// JobReportLine is one job's contribution to a rollup report.
type JobReportLine struct {
	JobID   string
	Summary billing.Summary
}

// OrderReport is the payment rollup of one order.
type OrderReport struct {
	OrderID string
	Jobs    []JobReportLine
	Total   billing.Summary
}

// WeeklyReport is the payment rollup of all jobs planned in one week.
type WeeklyReport struct {
	Window lifecycle.Window
	Jobs   []JobReportLine
	Total  billing.Summary
}

// ReportService manages payment rows and builds payment rollups.
type ReportService interface {
	AddPayment(ctx context.Context, params NewPaymentParams) (*jobs.Payment, error)
	PaymentsForJob(ctx context.Context, jobID string) (*JobPayments, error)
	OrderReport(ctx context.Context, orderID string) (*OrderReport, error)
	WeeklyReport(ctx context.Context, ref time.Time) (*WeeklyReport, error)
}

// ReportServiceImpl implements ReportService.
type ReportServiceImpl struct {
	paymentRepo contracts.PaymentRepository
	jobRepo     contracts.JobRepository
	orderRepo   contracts.JobOrderRepository
	clock       lifecycle.Clock
	location    *time.Location
	logger      *logging.Logger
}

// NewReportService creates the payment reporting service.
func NewReportService(
	paymentRepo contracts.PaymentRepository,
	jobRepo contracts.JobRepository,
	orderRepo contracts.JobOrderRepository,
	clock lifecycle.Clock,
	loc *time.Location,
) ReportService {
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReportServiceImpl{
		paymentRepo: paymentRepo,
		jobRepo:     jobRepo,
		orderRepo:   orderRepo,
		clock:       clock,
		location:    loc,
		logger:      logging.Default().WithComponent("report_service"),
	}
}

// AddPayment records an expected payment row against a job.
func (s *ReportServiceImpl) AddPayment(ctx context.Context, params NewPaymentParams) (*jobs.Payment, error) {
	if _, err := s.jobRepo.GetJob(ctx, params.JobID); err != nil {
		return nil, err
	}

	payment := &jobs.Payment{
		ID:              uuid.NewString(),
		JobID:           params.JobID,
		Amount:          params.Amount,
		Collected:       params.Collected,
		Partial:         params.Partial,
		CollectedAmount: params.CollectedAmount,
		DueDate:         params.DueDate,
		Note:            params.Note,
		CreatedAt:       s.clock.Now(),
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.AddPayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to add payment: %w", err)
	}
	s.logger.Info("Payment recorded",
		"payment_id", payment.ID,
		"job_id", payment.JobID,
		"amount", payment.Amount)
	return payment, nil
}

// PaymentsForJob returns a job's payment rows with their aggregate.
func (s *ReportServiceImpl) PaymentsForJob(ctx context.Context, jobID string) (*JobPayments, error) {
	if _, err := s.jobRepo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &JobPayments{Payments: payments, Summary: billing.Summarize(payments)}, nil
}

// OrderReport aggregates payments across all jobs of an order.
func (s *ReportServiceImpl) OrderReport(ctx context.Context, orderID string) (*OrderReport, error) {
	if _, err := s.orderRepo.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	report := &OrderReport{OrderID: orderID}
	report.Jobs, report.Total = rollup(payments)
	return report, nil
}

// WeeklyReport aggregates payments across all jobs planned in the week
// containing ref.
func (s *ReportServiceImpl) WeeklyReport(ctx context.Context, ref time.Time) (*WeeklyReport, error) {
	window := lifecycle.WeekOf(ref, s.location)

	jobList, err := s.jobRepo.ListJobs(ctx, contracts.JobFilter{
		PlannedFrom: &window.Start,
		PlannedTo:   &window.End,
	})
	if err != nil {
		return nil, err
	}

	jobIDs := make([]string, 0, len(jobList))
	for _, job := range jobList {
		jobIDs = append(jobIDs, job.ID)
	}

	var payments []*jobs.Payment
	if len(jobIDs) > 0 {
		payments, err = s.paymentRepo.ListPaymentsByJobs(ctx, jobIDs)
		if err != nil {
			return nil, err
		}
	}

	report := &WeeklyReport{Window: window}
	report.Jobs, report.Total = rollup(payments)
	return report, nil
}

// rollup groups payment rows by job, keeping first-seen job order.
func rollup(payments []*jobs.Payment) ([]JobReportLine, billing.Summary) {
	byJob := make(map[string][]*jobs.Payment)
	var order []string
	for _, p := range payments {
		if _, seen := byJob[p.JobID]; !seen {
			order = append(order, p.JobID)
		}
		byJob[p.JobID] = append(byJob[p.JobID], p)
	}

	var lines []JobReportLine
	var total billing.Summary
	for _, jobID := range order {
		summary := billing.Summarize(byJob[jobID])
		lines = append(lines, JobReportLine{JobID: jobID, Summary: summary})
		total = billing.Merge(total, summary)
	}
	return lines, total
}
