package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fieldops/application"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
	"fieldops/interfaces/api/presenters"
	"fieldops/logging"
)

// JobHandlers handles job CRUD and lifecycle transition endpoints.
type JobHandlers struct {
	jobService   application.JobService
	jobPresenter *presenters.JobPresenter
	logger       *logging.Logger
}

// NewJobHandlers creates a new job handlers instance.
func NewJobHandlers(jobService application.JobService, jobPresenter *presenters.JobPresenter) *JobHandlers {
	return &JobHandlers{
		jobService:   jobService,
		jobPresenter: jobPresenter,
		logger:       logging.Default().WithComponent("job_handler"),
	}
}

type createJobRequest struct {
	OrderID         string `json:"order_id"`
	Type            string `json:"type"`
	PlannedDate     string `json:"planned_date"`
	Notes           string `json:"notes"`
	NotesBackoffice string `json:"notes_backoffice"`
}

// CreateJob creates a job under an order.
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.OrderID == "" {
		badRequest(w, "missing order_id")
		return
	}
	jobType := jobs.JobType(req.Type)
	if !jobType.IsValid() {
		badRequest(w, "unknown job type")
		return
	}
	plannedDate, err := parseDate(req.PlannedDate)
	if err != nil {
		badRequest(w, "invalid planned_date")
		return
	}

	job, err := h.jobService.CreateJob(r.Context(), application.NewJobParams{
		OrderID:         req.OrderID,
		Type:            jobType,
		PlannedDate:     plannedDate,
		Notes:           req.Notes,
		NotesBackoffice: req.NotesBackoffice,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.jobPresenter.FormatCreatedJob(job))
}

// GetJob returns a job with its effective status.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, err := h.jobService.GetJob(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.jobPresenter.FormatJob(job))
}

// GetJobEvents returns a job's audit trail.
func (h *JobHandlers) GetJobEvents(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	events, err := h.jobService.GetJobEvents(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.jobPresenter.FormatEvents(events))
}

type transitionRequest struct {
	Action      string   `json:"action"`
	PlannedDate string   `json:"planned_date"`
	WorkerIDs   []string `json:"worker_ids"`
	Confirmed   bool     `json:"confirmed"`
	NewStatus   string   `json:"new_status"`
	Note        string   `json:"note"`
}

// Transition performs one manual lifecycle action on a job.
func (h *JobHandlers) Transition(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	action, err := lifecycle.ParseAction(req.Action)
	if err != nil {
		badRequest(w, "unknown action")
		return
	}
	plannedDate, err := parseDate(req.PlannedDate)
	if err != nil {
		badRequest(w, "invalid planned_date")
		return
	}

	payload := lifecycle.TransitionPayload{
		PlannedDate: plannedDate,
		WorkerIDs:   req.WorkerIDs,
		Confirmed:   req.Confirmed,
		NewStatus:   jobs.JobStatus(req.NewStatus),
		Note:        req.Note,
	}

	job, err := h.jobService.RequestTransition(r.Context(), jobID, action, payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.jobPresenter.FormatJob(job))
}

// DeleteJob removes a job without checkout history.
func (h *JobHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if err := h.jobService.DeleteJob(r.Context(), jobID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListWorkerJobs is the worker's my-jobs view.
func (h *JobHandlers) ListWorkerJobs(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	list, err := h.jobService.ListJobsForWorker(r.Context(), workerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.jobPresenter.FormatJobs(list))
}

// ListOrderJobs lists every job of an order.
func (h *JobHandlers) ListOrderJobs(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	list, err := h.jobService.ListJobsForOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.jobPresenter.FormatJobs(list))
}
