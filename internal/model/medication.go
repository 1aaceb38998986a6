package model

import (
	"time"

	"github.com/google/uuid"
)

// Medication schedule status constants
const (
	MedicationScheduled    = "scheduled"
	MedicationAdministered = "administered"
	MedicationOverdue      = "overdue"
)

// MedicationSchedule is a recurring dosing record. NextDoseTime only ever
// advances; each administration moves it forward by FrequencyHours.
type MedicationSchedule struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	PatientID          uuid.UUID  `json:"patient_id" db:"patient_id"`
	MedicationName     string     `json:"medication_name" db:"medication_name"`
	Dosage             string     `json:"dosage" db:"dosage"`
	Route              *string    `json:"route" db:"route"`
	FrequencyHours     int        `json:"frequency_hours" db:"frequency_hours"`
	StartTime          time.Time  `json:"start_time" db:"start_time"`
	NextDoseTime       time.Time  `json:"next_dose_time" db:"next_dose_time"`
	LastAdministeredAt *time.Time `json:"last_administered_at" db:"last_administered_at"`
	Status             string     `json:"status" db:"status"`
	AssignedNurseID    *uuid.UUID `json:"assigned_nurse_id" db:"assigned_nurse_id"`
	CreatedBy          uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// ScheduleMedicationRequest represents medication scheduling parameters
type ScheduleMedicationRequest struct {
	MedicationName  string     `json:"medication_name" binding:"required"`
	Dosage          string     `json:"dosage" binding:"required"`
	Route           *string    `json:"route"`
	FrequencyHours  int        `json:"frequency_hours" binding:"required,min=1"`
	StartTime       *time.Time `json:"start_time"`
	AssignedNurseID *uuid.UUID `json:"assigned_nurse_id"`
}

// AdministerMedicationRequest marks a dose as given. Time defaults to now.
type AdministerMedicationRequest struct {
	AdministeredTime *time.Time `json:"administered_time"`
}
