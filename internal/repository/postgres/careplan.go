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

type carePlanRepository struct {
	db *sqlx.DB
}

func NewCarePlanRepository(db *sqlx.DB) repository.CarePlanRepository {
	return &carePlanRepository{db: db}
}

func (r *carePlanRepository) Create(ctx context.Context, step *model.CarePlanStep) error {
	query := `
		INSERT INTO care_plan_steps (id, patient_id, title, description, assigned_to, due_time, status, created_by, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		step.ID,
		step.PatientID,
		step.Title,
		step.Description,
		step.AssignedTo,
		step.DueTime,
		step.Status,
		step.CreatedBy,
		step.CreatedAt,
		step.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create care plan step: %w", err)
	}
	return nil
}

func (r *carePlanRepository) Get(ctx context.Context, id uuid.UUID) (*model.CarePlanStep, error) {
	query := `SELECT * FROM care_plan_steps WHERE id = $1`
	var step model.CarePlanStep
	err := r.db.GetContext(ctx, &step, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get care plan step: %w", err)
	}
	return &step, nil
}

func (r *carePlanRepository) Update(ctx context.Context, step *model.CarePlanStep) error {
	query := `UPDATE care_plan_steps SET status = $1, completed_at = $2, assigned_to = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, step.Status, step.CompletedAt, step.AssignedTo, step.ID)
	if err != nil {
		return fmt.Errorf("failed to update care plan step: %w", err)
	}
	return nil
}

func (r *carePlanRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CarePlanStep, error) {
	query := `SELECT * FROM care_plan_steps WHERE patient_id = $1 ORDER BY due_time ASC NULLS LAST`
	var steps []*model.CarePlanStep
	err := r.db.SelectContext(ctx, &steps, query, patientID)
	return steps, err
}
