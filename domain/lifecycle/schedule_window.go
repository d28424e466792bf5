package lifecycle

import "time"

// Window is a half-open calendar interval [Start, End) used by agenda views.
type Window struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the calendar week containing t: Monday 00:00 in loc up to
// (excluding) the following Monday.
func WeekOf(t time.Time, loc *time.Location) Window {
	t = t.In(loc)
	// time.Weekday puts Sunday at 0; shift so Monday is day 0.
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	start := day.AddDate(0, 0, -offset)
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// Next returns the window immediately after w.
func (w Window) Next() Window {
	return Window{Start: w.End, End: w.End.AddDate(0, 0, 7)}
}

// Previous returns the window immediately before w.
func (w Window) Previous() Window {
	return Window{Start: w.Start.AddDate(0, 0, -7), End: w.Start}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Days returns the seven day starts of the window, in order.
func (w Window) Days() []time.Time {
	days := make([]time.Time, 0, 7)
	for d := w.Start; d.Before(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayIndex returns the zero-based day bucket for t, or -1 when t is outside
// the window.
func (w Window) DayIndex(t time.Time) int {
	if !w.Contains(t) {
		return -1
	}
	t = t.In(w.Start.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, w.Start.Location())
	return int(day.Sub(w.Start).Hours() / 24)
}
