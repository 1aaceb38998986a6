package model

import (
	"time"

	"github.com/google/uuid"
)

// VitalRecord is an immutable timestamped observation set. Append-only.
type VitalRecord struct {
	ID               uuid.UUID `json:"id" db:"id"`
	PatientID        uuid.UUID `json:"patient_id" db:"patient_id"`
	RecordedBy       uuid.UUID `json:"recorded_by" db:"recorded_by"`
	Temperature      *float64  `json:"temperature" db:"temperature"`
	BloodPressure    *string   `json:"blood_pressure" db:"blood_pressure"`
	Pulse            *int      `json:"pulse" db:"pulse"`
	RespirationRate  *int      `json:"respiration_rate" db:"respiration_rate"`
	OxygenSaturation *float64  `json:"oxygen_saturation" db:"oxygen_saturation"`
	Notes            *string   `json:"notes" db:"notes"`
	RecordedAt       time.Time `json:"recorded_at" db:"recorded_at"`
}

// CreateVitalRequest represents a vitals observation
type CreateVitalRequest struct {
	Temperature      *float64 `json:"temperature"`
	BloodPressure    *string  `json:"blood_pressure"`
	Pulse            *int     `json:"pulse"`
	RespirationRate  *int     `json:"respiration_rate"`
	OxygenSaturation *float64 `json:"oxygen_saturation"`
	Notes            *string  `json:"notes"`
}
