package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	// DateLayout is the canonical calendar-date representation used across
	// the roster. Appointments always store dates in this form so that
	// string equality is calendar-date equality.
	DateLayout = "2006-01-02"

	// TimeLayout is the canonical zero-padded 24-hour slot representation.
	// Lexical order on this form is chronological order, which the agenda
	// relies on when sorting a day.
	TimeLayout = "15:04"

	// DefaultCategory is assigned when a booking omits the visit type.
	DefaultCategory = "CONTRÔLE"
)

// Appointment is a booked visit slot in the practice agenda.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	Initial     string    `db:"initial" json:"initial"`
	Phone       string    `db:"phone" json:"phone,omitempty"`
	Email       string    `db:"email" json:"email,omitempty"`
	Date        string    `db:"visit_date" json:"date"`
	Time        string    `db:"visit_time" json:"time"`
	Category    string    `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	PatientName string `json:"patient_name" validate:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Date        string `json:"date"`
	Time        string `json:"time" validate:"required"`
	Category    string `json:"category"`
}

// RescheduleRequest moves an existing appointment. Both fields are
// mandatory: a reschedule never partially applies.
type RescheduleRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

// DayView is the agenda screen for one selected date: the 7-day picker
// strip, the day's appointments in slot order, and how full the day is.
type DayView struct {
	SelectedDate string         `json:"selected_date"`
	WeekWindow   []string       `json:"week_window"`
	Appointments []*Appointment `json:"appointments"`
	Occupancy    int            `json:"occupancy"`
}

// NormalizeDate parses s as a calendar date and returns it in canonical
// YYYY-MM-DD form.
func NormalizeDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}

// NormalizeTime parses s as a 24-hour time of day and returns it in
// canonical zero-padded HH:MM form ("9:00" becomes "09:00").
func NormalizeTime(s string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format(TimeLayout), nil
}

// DisplayName uppercases a patient name for the agenda list.
func DisplayName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NameInitial returns the uppercase first letter of a name, used as the
// avatar badge in the agenda list.
func NameInitial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return ""
}
