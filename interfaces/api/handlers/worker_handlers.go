package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fieldops/domain/contracts"
	"fieldops/domain/fieldwork"
	"fieldops/interfaces/api/presenters"
	"fieldops/logging"
)

// WorkerHandlers handles worker administration endpoints.
type WorkerHandlers struct {
	workerRepo contracts.WorkerRepository
	presenter  *presenters.FieldworkPresenter
	logger     *logging.Logger
}

// NewWorkerHandlers creates a new worker handlers instance.
func NewWorkerHandlers(workerRepo contracts.WorkerRepository, presenter *presenters.FieldworkPresenter) *WorkerHandlers {
	return &WorkerHandlers{
		workerRepo: workerRepo,
		presenter:  presenter,
		logger:     logging.Default().WithComponent("worker_handler"),
	}
}

type createWorkerRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	UserAccountID string `json:"user_account_id"`
}

// CreateWorker registers a worker.
func (h *WorkerHandlers) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req createWorkerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "missing name")
		return
	}

	worker := &fieldwork.Worker{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Phone:         req.Phone,
		UserAccountID: req.UserAccountID,
	}
	if err := h.workerRepo.CreateWorker(r.Context(), worker); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("Worker created", "worker_id", worker.ID, "name", worker.Name)
	writeJSON(w, http.StatusCreated, h.presenter.FormatWorker(worker))
}

// GetWorker returns one worker.
func (h *WorkerHandlers) GetWorker(w http.ResponseWriter, r *http.Request) {
	worker, err := h.workerRepo.GetWorker(r.Context(), chi.URLParam(r, "workerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatWorker(worker))
}

// ListWorkers lists all workers.
func (h *WorkerHandlers) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workerRepo.ListWorkers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatWorkers(workers))
}
