package presenters

import (
	"time"

	"fieldops/application"
	"fieldops/domain/billing"
	"fieldops/domain/jobs"
)

// PaymentView is the JSON representation of a payment row.
type PaymentView struct {
	ID              string  `json:"id"`
	JobID           string  `json:"job_id"`
	Amount          float64 `json:"amount"`
	Collected       bool    `json:"collected"`
	Partial         bool    `json:"partial"`
	CollectedAmount float64 `json:"collected_amount"`
	DueDate         *string `json:"due_date"`
	Note            string  `json:"note,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// SummaryView is the JSON representation of a payment aggregate.
type SummaryView struct {
	Expected  float64 `json:"expected"`
	Collected float64 `json:"collected"`
	Pending   float64 `json:"pending"`
}

// JobPaymentsView is a job's payments with their aggregate.
type JobPaymentsView struct {
	Payments []PaymentView `json:"payments"`
	Summary  SummaryView   `json:"summary"`
}

// ReportLineView is one job's line in a rollup report.
type ReportLineView struct {
	JobID   string      `json:"job_id"`
	Summary SummaryView `json:"summary"`
}

// OrderReportView is the payment rollup of one order.
type OrderReportView struct {
	OrderID string           `json:"order_id"`
	Jobs    []ReportLineView `json:"jobs"`
	Total   SummaryView      `json:"total"`
}

// WeeklyReportView is the payment rollup of one week.
type WeeklyReportView struct {
	WeekStart string           `json:"week_start"`
	WeekEnd   string           `json:"week_end"`
	Jobs      []ReportLineView `json:"jobs"`
	Total     SummaryView      `json:"total"`
}

// ReportPresenter formats payment data for API responses.
type ReportPresenter struct{}

// NewReportPresenter creates a new report presenter.
func NewReportPresenter() *ReportPresenter {
	return &ReportPresenter{}
}

// FormatPayment maps a payment row to its view model.
func (p *ReportPresenter) FormatPayment(payment *jobs.Payment) PaymentView {
	return PaymentView{
		ID:              payment.ID,
		JobID:           payment.JobID,
		Amount:          payment.Amount,
		Collected:       payment.Collected,
		Partial:         payment.Partial,
		CollectedAmount: payment.CollectedAmount,
		DueDate:         formatTimePtr(payment.DueDate),
		Note:            payment.Note,
		CreatedAt:       payment.CreatedAt.Format(time.RFC3339),
	}
}

// FormatJobPayments maps a job's payments and aggregate.
func (p *ReportPresenter) FormatJobPayments(jp *application.JobPayments) JobPaymentsView {
	views := make([]PaymentView, 0, len(jp.Payments))
	for _, payment := range jp.Payments {
		views = append(views, p.FormatPayment(payment))
	}
	return JobPaymentsView{Payments: views, Summary: p.formatSummary(jp.Summary)}
}

// FormatOrderReport maps an order rollup.
func (p *ReportPresenter) FormatOrderReport(report *application.OrderReport) OrderReportView {
	return OrderReportView{
		OrderID: report.OrderID,
		Jobs:    p.formatLines(report.Jobs),
		Total:   p.formatSummary(report.Total),
	}
}

// FormatWeeklyReport maps a weekly rollup.
func (p *ReportPresenter) FormatWeeklyReport(report *application.WeeklyReport) WeeklyReportView {
	return WeeklyReportView{
		WeekStart: report.Window.Start.Format("2006-01-02"),
		WeekEnd:   report.Window.End.Add(-24 * time.Hour).Format("2006-01-02"),
		Jobs:      p.formatLines(report.Jobs),
		Total:     p.formatSummary(report.Total),
	}
}

func (p *ReportPresenter) formatLines(lines []application.JobReportLine) []ReportLineView {
	views := make([]ReportLineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, ReportLineView{
			JobID:   line.JobID,
			Summary: p.formatSummary(line.Summary),
		})
	}
	return views
}

func (p *ReportPresenter) formatSummary(s billing.Summary) SummaryView {
	return SummaryView{Expected: s.Expected, Collected: s.Collected, Pending: s.Pending}
}
