package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fieldops/application"
	"fieldops/domain/contracts"
	"fieldops/domain/jobs"
	"fieldops/domain/lifecycle"
	"fieldops/interfaces/api/presenters"
)

// Mock implementations for testing
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) CreateJob(ctx context.Context, params application.NewJobParams) (*jobs.Job, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobs.Job), args.Error(1)
}

func (m *MockJobService) GetJob(ctx context.Context, jobID string) (*application.JobWithStatus, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.JobWithStatus), args.Error(1)
}

func (m *MockJobService) GetJobEvents(ctx context.Context, jobID string) ([]*contracts.JobEvent, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contracts.JobEvent), args.Error(1)
}

func (m *MockJobService) RequestTransition(ctx context.Context, jobID string, action lifecycle.Action, payload lifecycle.TransitionPayload, actor lifecycle.Actor) (*application.JobWithStatus, error) {
	args := m.Called(ctx, jobID, action, payload, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.JobWithStatus), args.Error(1)
}

func (m *MockJobService) DeleteJob(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockJobService) ListJobsForWorker(ctx context.Context, workerID string) ([]*application.JobWithStatus, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.JobWithStatus), args.Error(1)
}

func (m *MockJobService) ListJobsForOrder(ctx context.Context, orderID string) ([]*application.JobWithStatus, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.JobWithStatus), args.Error(1)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestJobHandlers_GetJob(t *testing.T) {
	mockService := new(MockJobService)
	h := NewJobHandlers(mockService, presenters.NewJobPresenter())

	planned := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	mockService.On("GetJob", mock.Anything, "job-1").Return(&application.JobWithStatus{
		Job: &jobs.Job{
			ID:          "job-1",
			OrderID:     "order-1",
			Type:        jobs.TypeAssembly,
			Status:      jobs.StatusAssigned,
			PlannedDate: &planned,
		},
		EffectiveStatus: jobs.StatusInProgress,
	}, nil)

	req := withURLParam(httptest.NewRequest("GET", "/jobs/job-1", nil), "jobID", "job-1")
	rec := httptest.NewRecorder()
	h.GetJob(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var view presenters.JobView
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "job-1", view.ID)
	assert.Equal(t, "assegnato", view.Status)
	assert.Equal(t, "in_corso", view.EffectiveStatus)
}

func TestJobHandlers_GetJob_NotFound(t *testing.T) {
	mockService := new(MockJobService)
	h := NewJobHandlers(mockService, presenters.NewJobPresenter())

	mockService.On("GetJob", mock.Anything, "missing").Return(nil, contracts.ErrNotFound)

	req := withURLParam(httptest.NewRequest("GET", "/jobs/missing", nil), "jobID", "missing")
	rec := httptest.NewRecorder()
	h.GetJob(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobHandlers_Transition(t *testing.T) {
	mockService := new(MockJobService)
	h := NewJobHandlers(mockService, presenters.NewJobPresenter())

	planned := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	mockService.On("RequestTransition", mock.Anything, "job-1", lifecycle.ActionAssign,
		mock.MatchedBy(func(p lifecycle.TransitionPayload) bool {
			return p.PlannedDate != nil && p.PlannedDate.Equal(planned) &&
				len(p.WorkerIDs) == 2
		}),
		lifecycle.Actor{ID: "user-1", Role: lifecycle.RoleBackoffice},
	).Return(&application.JobWithStatus{
		Job: &jobs.Job{
			ID:              "job-1",
			Status:          jobs.StatusAssigned,
			PlannedDate:     &planned,
			AssignedWorkers: []string{"w1", "w2"},
		},
		EffectiveStatus: jobs.StatusAssigned,
	}, nil)

	body := `{"action":"assign","planned_date":"2026-03-09T09:00:00Z","worker_ids":["w1","w2"]}`
	req := httptest.NewRequest("POST", "/jobs/job-1/transition", strings.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("X-User-Role", "backoffice")
	req = withURLParam(req, "jobID", "job-1")

	rec := httptest.NewRecorder()
	h.Transition(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var view presenters.JobView
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "assegnato", view.Status)
	assert.Equal(t, []string{"w1", "w2"}, view.Workers)
	mockService.AssertExpectations(t)
}

func TestJobHandlers_Transition_ValidationError(t *testing.T) {
	mockService := new(MockJobService)
	h := NewJobHandlers(mockService, presenters.NewJobPresenter())

	mockService.On("RequestTransition", mock.Anything, "job-1", lifecycle.ActionCancel,
		mock.Anything, mock.Anything).Return(nil, lifecycle.ErrConfirmationRequired)

	req := withURLParam(
		httptest.NewRequest("POST", "/jobs/job-1/transition", strings.NewReader(`{"action":"cancel"}`)),
		"jobID", "job-1")
	rec := httptest.NewRecorder()
	h.Transition(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestJobHandlers_Transition_UnknownAction(t *testing.T) {
	mockService := new(MockJobService)
	h := NewJobHandlers(mockService, presenters.NewJobPresenter())

	req := withURLParam(
		httptest.NewRequest("POST", "/jobs/job-1/transition", strings.NewReader(`{"action":"teleport"}`)),
		"jobID", "job-1")
	rec := httptest.NewRecorder()
	h.Transition(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "RequestTransition",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestJobHandlers_DeleteJob_Conflict(t *testing.T) {
	mockService := new(MockJobService)
	h := NewJobHandlers(mockService, presenters.NewJobPresenter())

	mockService.On("DeleteJob", mock.Anything, "job-1").
		Return(contracts.ErrJobHasCheckoutEvents)

	req := withURLParam(httptest.NewRequest("DELETE", "/jobs/job-1", nil), "jobID", "job-1")
	rec := httptest.NewRecorder()
	h.DeleteJob(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestJobHandlers_CreateJob(t *testing.T) {
	mockService := new(MockJobService)
	h := NewJobHandlers(mockService, presenters.NewJobPresenter())

	mockService.On("CreateJob", mock.Anything, mock.MatchedBy(func(p application.NewJobParams) bool {
		return p.OrderID == "order-1" && p.Type == jobs.TypeDelivery
	})).Return(&jobs.Job{
		ID:      "job-1",
		OrderID: "order-1",
		Type:    jobs.TypeDelivery,
		Status:  jobs.StatusAwaitingSchedule,
	}, nil)

	body := `{"order_id":"order-1","type":"consegna"}`
	req := httptest.NewRequest("POST", "/jobs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateJob(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var view presenters.JobView
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "in_attesa_programmazione", view.Status)
	assert.Equal(t, "Consegna", view.TypeLabel)
}

func TestJobHandlers_CreateJob_UnknownType(t *testing.T) {
	mockService := new(MockJobService)
	h := NewJobHandlers(mockService, presenters.NewJobPresenter())

	req := httptest.NewRequest("POST", "/jobs", strings.NewReader(`{"order_id":"order-1","type":"delivery"}`))
	rec := httptest.NewRecorder()
	h.CreateJob(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything)
}
