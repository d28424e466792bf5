// Package presenters maps application results to JSON view models. Handlers
// stay thin; all response shaping lives here.
package presenters

import (
	"time"

	"fieldops/application"
	"fieldops/domain/contracts"
	"fieldops/domain/jobs"
)

// JobView is the JSON representation of a job.
type JobView struct {
	ID              string   `json:"id"`
	OrderID         string   `json:"order_id"`
	Type            string   `json:"type"`
	TypeLabel       string   `json:"type_label"`
	Status          string   `json:"status"`
	EffectiveStatus string   `json:"effective_status"`
	PlannedDate     *string  `json:"planned_date"`
	Workers         []string `json:"workers"`
	Notes           string   `json:"notes,omitempty"`
	NotesBackoffice string   `json:"notes_backoffice,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// JobEventView is the JSON representation of one audit trail entry.
type JobEventView struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Payload   string `json:"payload,omitempty"`
	CreatedAt string `json:"created_at"`
}

// JobPresenter formats job data for API responses.
type JobPresenter struct{}

// NewJobPresenter creates a new job presenter.
func NewJobPresenter() *JobPresenter {
	return &JobPresenter{}
}

// FormatJob maps a job with its effective status to the view model.
func (p *JobPresenter) FormatJob(j *application.JobWithStatus) JobView {
	view := p.formatJobRow(j.Job)
	view.EffectiveStatus = string(j.EffectiveStatus)
	return view
}

// FormatJobs maps a job list, never returning a nil slice.
func (p *JobPresenter) FormatJobs(list []*application.JobWithStatus) []JobView {
	views := make([]JobView, 0, len(list))
	for _, j := range list {
		views = append(views, p.FormatJob(j))
	}
	return views
}

// FormatCreatedJob maps a freshly created job; its effective status equals
// the stored one.
func (p *JobPresenter) FormatCreatedJob(job *jobs.Job) JobView {
	view := p.formatJobRow(job)
	view.EffectiveStatus = string(job.Status)
	return view
}

// FormatEvents maps an audit trail to view models.
func (p *JobPresenter) FormatEvents(events []*contracts.JobEvent) []JobEventView {
	views := make([]JobEventView, 0, len(events))
	for _, e := range events {
		views = append(views, JobEventView{
			ID:        e.ID,
			Type:      e.Type,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	return views
}

func (p *JobPresenter) formatJobRow(job *jobs.Job) JobView {
	workers := job.AssignedWorkers
	if workers == nil {
		workers = []string{}
	}
	return JobView{
		ID:              job.ID,
		OrderID:         job.OrderID,
		Type:            string(job.Type),
		TypeLabel:       job.Type.DisplayName(),
		Status:          string(job.Status),
		PlannedDate:     formatTimePtr(job.PlannedDate),
		Workers:         workers,
		Notes:           job.Notes,
		NotesBackoffice: job.NotesBackoffice,
		CreatedAt:       job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       job.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
