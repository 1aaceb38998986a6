package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
)

type vitalRepository struct {
	db *sqlx.DB
}

func NewVitalRepository(db *sqlx.DB) repository.VitalRepository {
	return &vitalRepository{db: db}
}

func (r *vitalRepository) Create(ctx context.Context, record *model.VitalRecord) error {
	query := `
		INSERT INTO vital_records (id, patient_id, recorded_by, temperature, blood_pressure, pulse, respiration_rate, oxygen_saturation, notes, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PatientID,
		record.RecordedBy,
		record.Temperature,
		record.BloodPressure,
		record.Pulse,
		record.RespirationRate,
		record.OxygenSaturation,
		record.Notes,
		record.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create vital record: %w", err)
	}
	return nil
}

func (r *vitalRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.VitalRecord, error) {
	query := `SELECT * FROM vital_records WHERE patient_id = $1 ORDER BY recorded_at DESC`
	var records []*model.VitalRecord
	err := r.db.SelectContext(ctx, &records, query, patientID)
	return records, err
}
