package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/efficience-dental/agenda-api/internal/model"
)

// All repository interfaces in one file
type (
	// AppointmentRepository is the durable store behind the agenda. The
	// engine never mutates its snapshot directly; every write goes through
	// here and is followed by a full re-fetch.
	AppointmentRepository interface {
		List(ctx context.Context) ([]*model.Appointment, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Create(ctx context.Context, appointment *model.Appointment) error
		// UpdateSchedule moves an appointment to a new date and time slot.
		// No other column is touched.
		UpdateSchedule(ctx context.Context, id uuid.UUID, date, timeOfDay string) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	CabinetRepository interface {
		Get(ctx context.Context) (*model.Cabinet, error)
		Update(ctx context.Context, cabinet *model.Cabinet) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}
)
