package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fieldops/application"
	"fieldops/interfaces/api/presenters"
	"fieldops/logging"
)

// ReportHandlers handles payment and reporting endpoints.
type ReportHandlers struct {
	reportService application.ReportService
	presenter     *presenters.ReportPresenter
	logger        *logging.Logger
}

// NewReportHandlers creates a new report handlers instance.
func NewReportHandlers(reportService application.ReportService, presenter *presenters.ReportPresenter) *ReportHandlers {
	return &ReportHandlers{
		reportService: reportService,
		presenter:     presenter,
		logger:        logging.Default().WithComponent("report_handler"),
	}
}

type addPaymentRequest struct {
	Amount          float64 `json:"amount"`
	Collected       bool    `json:"collected"`
	Partial         bool    `json:"partial"`
	CollectedAmount float64 `json:"collected_amount"`
	DueDate         string  `json:"due_date"`
	Note            string  `json:"note"`
}

// AddPayment records a payment row against a job.
func (h *ReportHandlers) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req addPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		badRequest(w, "invalid due_date")
		return
	}

	payment, err := h.reportService.AddPayment(r.Context(), application.NewPaymentParams{
		JobID:           chi.URLParam(r, "jobID"),
		Amount:          req.Amount,
		Collected:       req.Collected,
		Partial:         req.Partial,
		CollectedAmount: req.CollectedAmount,
		DueDate:         dueDate,
		Note:            req.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.presenter.FormatPayment(payment))
}

// JobPayments returns a job's payment rows with their aggregate.
func (h *ReportHandlers) JobPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.PaymentsForJob(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatJobPayments(result))
}

// OrderReport returns the payment rollup of one order.
func (h *ReportHandlers) OrderReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.OrderReport(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatOrderReport(report))
}

// WeeklyReport returns the payment rollup of the week containing the "week"
// query parameter, defaulting to the current week.
func (h *ReportHandlers) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if s := r.URL.Query().Get("week"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			badRequest(w, "invalid week date")
			return
		}
		ref = parsed
	}

	report, err := h.reportService.WeeklyReport(r.Context(), ref)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatWeeklyReport(report))
}
