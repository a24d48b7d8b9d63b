package agenda

import (
	"math"
	"sort"
	"time"

	"github.com/efficience-dental/agenda-api/internal/model"
)

// WeekWindow returns the 7-day picker strip around the selected date: the
// three days before it, the date itself, and the three days after, in
// ascending order. Calendar arithmetic, so month and year boundaries roll
// over correctly.
func WeekWindow(selected time.Time) []string {
	window := make([]string, 0, 7)
	start := selected.AddDate(0, 0, -3)
	for i := 0; i < 7; i++ {
		window = append(window, start.AddDate(0, 0, i).Format(model.DateLayout))
	}
	return window
}

// FilterDay returns the appointments falling on the given canonical date,
// ordered by time slot. Matching is exact string equality on the
// normalized YYYY-MM-DD form, so it cannot be skewed by time zones. The
// sort is stable: appointments sharing a slot keep their relative order.
func FilterDay(roster []*model.Appointment, date string) []*model.Appointment {
	day := make([]*model.Appointment, 0)
	for _, apt := range roster {
		if apt.Date == date {
			day = append(day, apt)
		}
	}
	// Lexical order on zero-padded HH:MM is chronological order.
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].Time < day[j].Time
	})
	return day
}

// OccupancyRate expresses how full a day is against its capacity target,
// as a whole percentage capped at 100. Overbooked days saturate rather
// than report more than 100.
func OccupancyRate(count, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	pct := int(math.Round(float64(count) / float64(capacity) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
