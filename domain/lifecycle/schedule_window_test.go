package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		wantStart string
	}{
		{"monday maps to itself", "2026-03-02T10:00:00Z", "2026-03-02"},
		{"wednesday maps back to monday", "2026-03-04T23:59:00Z", "2026-03-02"},
		{"sunday maps back to monday", "2026-03-08T00:00:00Z", "2026-03-02"},
		{"next monday starts a new week", "2026-03-09T00:00:00Z", "2026-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := time.Parse(time.RFC3339, tt.ref)
			assert.NoError(t, err)

			w := WeekOf(ref, time.UTC)
			assert.Equal(t, tt.wantStart, w.Start.Format("2006-01-02"))
			assert.Equal(t, w.Start.AddDate(0, 0, 7), w.End)
		})
	}
}

func TestWindow_Navigation(t *testing.T) {
	w := WeekOf(time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), time.UTC)

	next := w.Next()
	assert.Equal(t, w.End, next.Start)

	prev := w.Previous()
	assert.Equal(t, w.Start, prev.End)
	assert.Equal(t, w, prev.Next())
}

func TestWindow_Contains(t *testing.T) {
	w := WeekOf(time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), time.UTC)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End.Add(-time.Second)))
	assert.False(t, w.Contains(w.End), "end is exclusive")
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
}

func TestWindow_Days(t *testing.T) {
	w := WeekOf(time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), time.UTC)
	days := w.Days()

	assert.Len(t, days, 7)
	assert.Equal(t, w.Start, days[0])
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, time.Sunday, days[6].Weekday())
}

func TestWindow_DayIndex(t *testing.T) {
	w := WeekOf(time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), time.UTC)

	assert.Equal(t, 0, w.DayIndex(w.Start))
	assert.Equal(t, 2, w.DayIndex(time.Date(2026, 3, 4, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, 6, w.DayIndex(w.End.Add(-time.Minute)))
	assert.Equal(t, -1, w.DayIndex(w.End))
}
