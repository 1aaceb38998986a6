package model

import (
	"time"

	"github.com/google/uuid"
)

// Task priority constants
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Task status constants
const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

// Task is a generic staff work item, independent of any patient.
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	AssignedTo  uuid.UUID  `json:"assigned_to" db:"assigned_to"`
	AssignedBy  uuid.UUID  `json:"assigned_by" db:"assigned_by"`
	Priority    string     `json:"priority" db:"priority"`
	Status      string     `json:"status" db:"status"`
	Deadline    *time.Time `json:"deadline" db:"deadline"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
}

// CreateTaskRequest represents task creation parameters
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	AssignedTo  uuid.UUID  `json:"assigned_to" binding:"required"`
	Priority    string     `json:"priority" binding:"required,oneof=low medium high critical"`
	Deadline    *time.Time `json:"deadline"`
}
