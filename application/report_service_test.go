package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fieldops/domain/contracts"
	"fieldops/domain/fieldwork"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
	"fieldops/test/mocks"
)

func newReportServiceFixture(t *testing.T) (ReportService, *mocks.MockPaymentRepository, *mocks.MockJobRepository, *mocks.MockOrderRepository) {
	t.Helper()

	paymentRepo := &mocks.MockPaymentRepository{}
	jobRepo := &mocks.MockJobRepository{}
	orderRepo := &mocks.MockOrderRepository{}
	clock := lifecycle.FixedClock{At: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)}

	return NewReportService(paymentRepo, jobRepo, orderRepo, clock, time.UTC), paymentRepo, jobRepo, orderRepo
}

func TestReportService_AddPayment(t *testing.T) {
	service, paymentRepo, jobRepo, _ := newReportServiceFixture(t)

	jobRepo.On("GetJob", mock.Anything, "job-1").
		Return(&jobs.Job{ID: "job-1"}, nil)
	paymentRepo.On("AddPayment", mock.Anything, mock.MatchedBy(func(p *jobs.Payment) bool {
		return p.ID != "" && p.JobID == "job-1" && p.Amount == 250
	})).Return(nil)

	payment, err := service.AddPayment(context.Background(), NewPaymentParams{
		JobID:  "job-1",
		Amount: 250,
	})
	assert.NoError(t, err)
	assert.Equal(t, 250.0, payment.Amount)
	paymentRepo.AssertExpectations(t)
}

func TestReportService_AddPayment_RejectsInvalidRows(t *testing.T) {
	service, paymentRepo, jobRepo, _ := newReportServiceFixture(t)

	jobRepo.On("GetJob", mock.Anything, "job-1").
		Return(&jobs.Job{ID: "job-1"}, nil)

	_, err := service.AddPayment(context.Background(), NewPaymentParams{
		JobID:     "job-1",
		Amount:    100,
		Collected: true,
		Partial:   true,
	})
	assert.Error(t, err)
	paymentRepo.AssertNotCalled(t, "AddPayment", mock.Anything, mock.Anything)
}

func TestReportService_PaymentsForJob(t *testing.T) {
	service, paymentRepo, jobRepo, _ := newReportServiceFixture(t)

	jobRepo.On("GetJob", mock.Anything, "job-1").
		Return(&jobs.Job{ID: "job-1"}, nil)
	paymentRepo.On("ListPaymentsByJob", mock.Anything, "job-1").Return([]*jobs.Payment{
		{JobID: "job-1", Amount: 100, Collected: true},
		{JobID: "job-1", Amount: 200, Partial: true, CollectedAmount: 50},
	}, nil)

	result, err := service.PaymentsForJob(context.Background(), "job-1")
	assert.NoError(t, err)
	assert.Len(t, result.Payments, 2)
	assert.Equal(t, 300.0, result.Summary.Expected)
	assert.Equal(t, 150.0, result.Summary.Collected)
	assert.Equal(t, 150.0, result.Summary.Pending)
}

func TestReportService_OrderReport_RollsUpPerJob(t *testing.T) {
	service, paymentRepo, _, orderRepo := newReportServiceFixture(t)

	orderRepo.On("GetOrder", mock.Anything, "order-1").
		Return(&fieldwork.JobOrder{ID: "order-1"}, nil)
	paymentRepo.On("ListPaymentsByOrder", mock.Anything, "order-1").Return([]*jobs.Payment{
		{JobID: "job-1", Amount: 100, Collected: true},
		{JobID: "job-2", Amount: 80},
		{JobID: "job-1", Amount: 20},
	}, nil)

	report, err := service.OrderReport(context.Background(), "order-1")
	assert.NoError(t, err)
	assert.Len(t, report.Jobs, 2)
	assert.Equal(t, "job-1", report.Jobs[0].JobID)
	assert.Equal(t, 120.0, report.Jobs[0].Summary.Expected)
	assert.Equal(t, 100.0, report.Jobs[0].Summary.Collected)
	assert.Equal(t, 80.0, report.Jobs[1].Summary.Pending)
	assert.Equal(t, 200.0, report.Total.Expected)
	assert.Equal(t, 100.0, report.Total.Collected)
	assert.Equal(t, 100.0, report.Total.Pending)
}

func TestReportService_WeeklyReport(t *testing.T) {
	service, paymentRepo, jobRepo, _ := newReportServiceFixture(t)

	planned := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	jobRepo.On("ListJobs", mock.Anything, mock.MatchedBy(func(f contracts.JobFilter) bool {
		return f.PlannedFrom != nil && f.PlannedTo != nil &&
			f.PlannedFrom.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	})).Return([]*jobs.Job{
		{ID: "job-1", Status: jobs.StatusCompleted, PlannedDate: &planned},
	}, nil)
	paymentRepo.On("ListPaymentsByJobs", mock.Anything, []string{"job-1"}).Return([]*jobs.Payment{
		{JobID: "job-1", Amount: 500, Collected: true},
	}, nil)

	report, err := service.WeeklyReport(context.Background(), time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-02", report.Window.Start.Format("2006-01-02"))
	assert.Len(t, report.Jobs, 1)
	assert.Equal(t, 500.0, report.Total.Collected)
}

func TestReportService_WeeklyReport_NoJobs(t *testing.T) {
	service, paymentRepo, jobRepo, _ := newReportServiceFixture(t)

	jobRepo.On("ListJobs", mock.Anything, mock.Anything).Return([]*jobs.Job{}, nil)

	report, err := service.WeeklyReport(context.Background(), time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Empty(t, report.Jobs)
	paymentRepo.AssertNotCalled(t, "ListPaymentsByJobs", mock.Anything, mock.Anything)
}
