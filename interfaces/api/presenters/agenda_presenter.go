package presenters

import (
	"time"

	"fieldops/application"
)

// AgendaDayView is one day column of the weekly agenda.
type AgendaDayView struct {
	Date string    `json:"date"`
	Jobs []JobView `json:"jobs"`
}

// AgendaWeekView is the JSON representation of the weekly scheduling view.
type AgendaWeekView struct {
	WeekStart   string          `json:"week_start"`
	WeekEnd     string          `json:"week_end"`
	Days        []AgendaDayView `json:"days"`
	Unscheduled []JobView       `json:"unscheduled"`
	Workers     []WorkerView    `json:"workers"`
}

// AgendaPresenter formats the weekly agenda for API responses.
type AgendaPresenter struct {
	jobPresenter       *JobPresenter
	fieldworkPresenter *FieldworkPresenter
}

// NewAgendaPresenter creates a new agenda presenter.
func NewAgendaPresenter(jobPresenter *JobPresenter, fieldworkPresenter *FieldworkPresenter) *AgendaPresenter {
	return &AgendaPresenter{
		jobPresenter:       jobPresenter,
		fieldworkPresenter: fieldworkPresenter,
	}
}

// FormatWeek maps an agenda week to its view model.
func (p *AgendaPresenter) FormatWeek(week *application.AgendaWeek) AgendaWeekView {
	view := AgendaWeekView{
		WeekStart:   week.Window.Start.Format("2006-01-02"),
		WeekEnd:     week.Window.End.Add(-24 * time.Hour).Format("2006-01-02"),
		Days:        make([]AgendaDayView, 0, len(week.Days)),
		Unscheduled: p.jobPresenter.FormatJobs(week.Unscheduled),
		Workers:     p.fieldworkPresenter.FormatWorkers(week.Workers),
	}
	for _, day := range week.Days {
		view.Days = append(view.Days, AgendaDayView{
			Date: day.Date.Format("2006-01-02"),
			Jobs: p.jobPresenter.FormatJobs(day.Jobs),
		})
	}
	return view
}
