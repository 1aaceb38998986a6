package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
)

type shiftRepository struct {
	db *sqlx.DB
}

func NewShiftRepository(db *sqlx.DB) repository.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	query := `
		INSERT INTO shifts (id, user_id, clock_in, clock_out, break_duration, overtime, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		shift.ID,
		shift.UserID,
		shift.ClockIn,
		shift.ClockOut,
		shift.BreakDuration,
		shift.Overtime,
		shift.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}
	return nil
}

func (r *shiftRepository) GetOpenByUserID(ctx context.Context, userID uuid.UUID) (*model.Shift, error) {
	query := `SELECT * FROM shifts WHERE user_id = $1 AND clock_out IS NULL ORDER BY clock_in DESC LIMIT 1`
	var shift model.Shift
	err := r.db.GetContext(ctx, &shift, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get open shift: %w", err)
	}
	return &shift, nil
}

func (r *shiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	query := `UPDATE shifts SET clock_out = $1, break_duration = $2, overtime = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, shift.ClockOut, shift.BreakDuration, shift.Overtime, shift.ID)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	return nil
}
