package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efficience-dental/agenda-api/internal/model"
)

func date(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWeekWindow(t *testing.T) {
	window := WeekWindow(date("2025-06-15"))

	require.Len(t, window, 7)
	assert.Equal(t, "2025-06-15", window[3])
	assert.Equal(t, []string{
		"2025-06-12", "2025-06-13", "2025-06-14", "2025-06-15",
		"2025-06-16", "2025-06-17", "2025-06-18",
	}, window)
}

func TestWeekWindowYearBoundary(t *testing.T) {
	window := WeekWindow(date("2025-01-01"))

	require.Len(t, window, 7)
	assert.Equal(t, []string{
		"2024-12-29", "2024-12-30", "2024-12-31", "2025-01-01",
		"2025-01-02", "2025-01-03", "2025-01-04",
	}, window)
}

func TestWeekWindowAlwaysContiguous(t *testing.T) {
	for _, d := range []string{"2024-02-27", "2025-02-26", "2025-07-31", "2025-12-30"} {
		window := WeekWindow(date(d))
		require.Len(t, window, 7)
		assert.Equal(t, d, window[3])
		for i := 1; i < 7; i++ {
			prev := date(window[i-1])
			assert.Equal(t, prev.AddDate(0, 0, 1).Format(model.DateLayout), window[i],
				"window around %s must increase by one day at index %d", d, i)
		}
	}
}

func TestFilterDay(t *testing.T) {
	roster := []*model.Appointment{
		{PatientName: "A", Date: "2025-12-10", Time: "09:00"},
		{PatientName: "B", Date: "2025-12-11", Time: "08:00"},
		{PatientName: "C", Date: "2025-12-10", Time: "08:30"},
	}

	day := FilterDay(roster, "2025-12-10")
	require.Len(t, day, 2)
	assert.Equal(t, "C", day[0].PatientName)
	assert.Equal(t, "A", day[1].PatientName)

	assert.Empty(t, FilterDay(roster, "2025-12-12"))
	assert.Empty(t, FilterDay(nil, "2025-12-10"))
}

func TestFilterDaySortIsStable(t *testing.T) {
	roster := []*model.Appointment{
		{PatientName: "FIRST", Date: "2025-12-10", Time: "09:00"},
		{PatientName: "SECOND", Date: "2025-12-10", Time: "09:00"},
		{PatientName: "EARLY", Date: "2025-12-10", Time: "08:30"},
		{PatientName: "THIRD", Date: "2025-12-10", Time: "09:00"},
	}

	day := FilterDay(roster, "2025-12-10")
	require.Len(t, day, 4)
	assert.Equal(t, "EARLY", day[0].PatientName)
	assert.Equal(t, "FIRST", day[1].PatientName)
	assert.Equal(t, "SECOND", day[2].PatientName)
	assert.Equal(t, "THIRD", day[3].PatientName)
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0, OccupancyRate(0, 10))
	assert.Equal(t, 20, OccupancyRate(2, 10))
	assert.Equal(t, 50, OccupancyRate(5, 10))
	assert.Equal(t, 100, OccupancyRate(10, 10))
	// Overbooking saturates, never exceeds 100.
	assert.Equal(t, 100, OccupancyRate(15, 10))
	assert.Equal(t, 100, OccupancyRate(1000, 10))
	// Rounded, not truncated.
	assert.Equal(t, 33, OccupancyRate(1, 3))
	assert.Equal(t, 67, OccupancyRate(2, 3))
	// A zero capacity cannot divide.
	assert.Equal(t, 0, OccupancyRate(5, 0))
}
