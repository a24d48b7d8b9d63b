package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/efficience-dental/agenda-api/internal/model"
	"github.com/efficience-dental/agenda-api/internal/repository"
	apperrors "github.com/efficience-dental/agenda-api/pkg/errors"
)

type cabinetRepository struct {
	db *sqlx.DB
}

func NewCabinetRepository(db *sqlx.DB) repository.CabinetRepository {
	return &cabinetRepository{db: db}
}

// The practice profile is a single row; id 1 by convention.

func (r *cabinetRepository) Get(ctx context.Context) (*model.Cabinet, error) {
	query := `
		SELECT id, name, address, phone, updated_at
		FROM cabinet
		WHERE id = 1
	`
	var cabinet model.Cabinet
	err := r.db.GetContext(ctx, &cabinet, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("cabinet", err)
	}
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	return &cabinet, nil
}

func (r *cabinetRepository) Update(ctx context.Context, cabinet *model.Cabinet) error {
	query := `
		UPDATE cabinet
		SET name = $1, address = $2, phone = $3, updated_at = $4
		WHERE id = 1
	`
	cabinet.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		cabinet.Name,
		cabinet.Address,
		cabinet.Phone,
		cabinet.UpdatedAt,
	)
	if err != nil {
		return apperrors.Unavailable(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Unavailable(err)
	}
	if rows == 0 {
		return apperrors.NotFound("cabinet", nil)
	}
	return nil
}
