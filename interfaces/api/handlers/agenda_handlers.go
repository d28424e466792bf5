package handlers

import (
	"net/http"
	"time"

	"fieldops/application"
	"fieldops/interfaces/api/presenters"
	"fieldops/logging"
)

// AgendaHandlers handles the weekly scheduling view.
type AgendaHandlers struct {
	agendaService application.AgendaService
	presenter     *presenters.AgendaPresenter
	logger        *logging.Logger
}

// NewAgendaHandlers creates a new agenda handlers instance.
func NewAgendaHandlers(agendaService application.AgendaService, presenter *presenters.AgendaPresenter) *AgendaHandlers {
	return &AgendaHandlers{
		agendaService: agendaService,
		presenter:     presenter,
		logger:        logging.Default().WithComponent("agenda_handler"),
	}
}

// Week returns the agenda for the week containing the "week" query parameter
// (YYYY-MM-DD, any day of the week), defaulting to the current week.
func (h *AgendaHandlers) Week(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if s := r.URL.Query().Get("week"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			badRequest(w, "invalid week date")
			return
		}
		ref = parsed
	}

	week, err := h.agendaService.WeekView(r.Context(), ref)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.FormatWeek(week))
}
