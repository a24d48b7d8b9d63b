package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/efficience-dental/agenda-api/internal/model"
	"github.com/efficience-dental/agenda-api/internal/repository"
	apperrors "github.com/efficience-dental/agenda-api/pkg/errors"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_name, initial, phone, email,
			   visit_date, visit_time, category,
			   created_at, updated_at
		FROM appointments
		ORDER BY visit_date ASC, visit_time ASC
	`
	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, apperrors.Unavailable(err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, patient_name, initial, phone, email,
			   visit_date, visit_time, category,
			   created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_name, initial, phone, email,
			visit_date, visit_time, category,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientName,
		appointment.Initial,
		appointment.Phone,
		appointment.Email,
		appointment.Date,
		appointment.Time,
		appointment.Category,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return apperrors.Unavailable(err)
	}
	return nil
}

func (r *appointmentRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, date, timeOfDay string) error {
	query := `
		UPDATE appointments
		SET visit_date = $1, visit_time = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, date, timeOfDay, time.Now(), id)
	if err != nil {
		return apperrors.Unavailable(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Unavailable(err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Unavailable(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Unavailable(err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}
