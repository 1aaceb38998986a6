package model

import (
	"time"

	"github.com/google/uuid"
)

// Care-plan step status values observed in practice. The status column
// accepts a free string; these are the known ones.
const (
	CarePlanPending    = "pending"
	CarePlanInProgress = "in-progress"
	CarePlanCompleted  = "completed"
)

// CarePlanStep is a discrete clinical action tracked per patient.
type CarePlanStep struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	PatientID   uuid.UUID  `json:"patient_id" db:"patient_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	AssignedTo  *uuid.UUID `json:"assigned_to" db:"assigned_to"`
	DueTime     *time.Time `json:"due_time" db:"due_time"`
	Status      string     `json:"status" db:"status"`
	CreatedBy   uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
}

// CreateCarePlanStepRequest represents care-plan step creation parameters
type CreateCarePlanStepRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	DueTime     *time.Time `json:"due_time"`
}

// UpdateCarePlanStatusRequest updates a step's status
type UpdateCarePlanStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
