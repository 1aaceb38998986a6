package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient status constants
const (
	PatientAdmitted   = "admitted"
	PatientDischarged = "discharged"
)

// Patient represents an admitted patient with assigned care staff.
type Patient struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Age              int       `json:"age" db:"age"`
	Gender           string    `json:"gender" db:"gender"`
	Illness          string    `json:"illness" db:"illness"`
	RoomNumber       string    `json:"room_number" db:"room_number"`
	AssignedDoctorID uuid.UUID `json:"assigned_doctor_id" db:"assigned_doctor_id"`
	AssignedNurseID  uuid.UUID `json:"assigned_nurse_id" db:"assigned_nurse_id"`
	MedicalHistory   *string   `json:"medical_history" db:"medical_history"`
	Status           string    `json:"status" db:"status"`
	AdmittedAt       time.Time `json:"admitted_at" db:"admitted_at"`
}

// CreatePatientRequest represents patient admission parameters
type CreatePatientRequest struct {
	Name             string    `json:"name" binding:"required"`
	Age              int       `json:"age" binding:"required,min=0"`
	Gender           string    `json:"gender" binding:"required"`
	Illness          string    `json:"illness" binding:"required"`
	RoomNumber       string    `json:"room_number" binding:"required"`
	AssignedDoctorID uuid.UUID `json:"assigned_doctor_id" binding:"required"`
	AssignedNurseID  uuid.UUID `json:"assigned_nurse_id" binding:"required"`
	MedicalHistory   *string   `json:"medical_history"`
}
