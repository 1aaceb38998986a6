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

type presenceRepository struct {
	db *sqlx.DB
}

func NewPresenceRepository(db *sqlx.DB) repository.PresenceRepository {
	return &presenceRepository{db: db}
}

func (r *presenceRepository) Create(ctx context.Context, presence *model.StaffPresence) error {
	query := `
		INSERT INTO staff_presence (id, user_id, status, activity, location, shift_start, shift_end, last_active, assigned_patients)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		presence.ID,
		presence.UserID,
		presence.Status,
		presence.Activity,
		presence.Location,
		presence.ShiftStart,
		presence.ShiftEnd,
		presence.LastActive,
		presence.AssignedPatients,
	)
	if err != nil {
		return fmt.Errorf("failed to create presence: %w", err)
	}
	return nil
}

func (r *presenceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.StaffPresence, error) {
	query := `SELECT * FROM staff_presence WHERE user_id = $1`
	var presence model.StaffPresence
	err := r.db.GetContext(ctx, &presence, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get presence: %w", err)
	}
	return &presence, nil
}

func (r *presenceRepository) Update(ctx context.Context, presence *model.StaffPresence) error {
	query := `
		UPDATE staff_presence
		SET status = $1, activity = $2, location = $3, shift_start = $4, shift_end = $5, last_active = $6, assigned_patients = $7
		WHERE id = $8
	`
	_, err := r.db.ExecContext(ctx, query,
		presence.Status,
		presence.Activity,
		presence.Location,
		presence.ShiftStart,
		presence.ShiftEnd,
		presence.LastActive,
		presence.AssignedPatients,
		presence.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	return nil
}

func (r *presenceRepository) ListOnDuty(ctx context.Context) ([]*model.StaffPresence, error) {
	query := `SELECT * FROM staff_presence WHERE status = $1`
	var presences []*model.StaffPresence
	err := r.db.SelectContext(ctx, &presences, query, model.PresenceOnDuty)
	return presences, err
}

func (r *presenceRepository) ListRoster(ctx context.Context) ([]*model.PresenceEntry, error) {
	query := `
		SELECT p.id, p.user_id, u.full_name, u.role, p.status, p.activity, p.location, p.assigned_patients, p.last_active
		FROM staff_presence p
		JOIN users u ON u.id = p.user_id
		ORDER BY u.full_name
	`
	var entries []*model.PresenceEntry
	err := r.db.SelectContext(ctx, &entries, query)
	return entries, err
}
