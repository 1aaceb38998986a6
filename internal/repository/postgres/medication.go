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

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) repository.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, med *model.MedicationSchedule) error {
	query := `
		INSERT INTO medication_schedules (id, patient_id, medication_name, dosage, route, frequency_hours, start_time, next_dose_time, last_administered_at, status, assigned_nurse_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		med.ID,
		med.PatientID,
		med.MedicationName,
		med.Dosage,
		med.Route,
		med.FrequencyHours,
		med.StartTime,
		med.NextDoseTime,
		med.LastAdministeredAt,
		med.Status,
		med.AssignedNurseID,
		med.CreatedBy,
		med.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medication schedule: %w", err)
	}
	return nil
}

func (r *medicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicationSchedule, error) {
	query := `SELECT * FROM medication_schedules WHERE id = $1`
	var med model.MedicationSchedule
	err := r.db.GetContext(ctx, &med, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get medication schedule: %w", err)
	}
	return &med, nil
}

func (r *medicationRepository) Update(ctx context.Context, med *model.MedicationSchedule) error {
	query := `
		UPDATE medication_schedules
		SET next_dose_time = $1, last_administered_at = $2, status = $3, assigned_nurse_id = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query,
		med.NextDoseTime,
		med.LastAdministeredAt,
		med.Status,
		med.AssignedNurseID,
		med.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medication schedule: %w", err)
	}
	return nil
}

func (r *medicationRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicationSchedule, error) {
	query := `SELECT * FROM medication_schedules WHERE patient_id = $1 ORDER BY next_dose_time ASC`
	var meds []*model.MedicationSchedule
	err := r.db.SelectContext(ctx, &meds, query, patientID)
	return meds, err
}
