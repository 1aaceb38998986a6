package model

import (
	"time"

	"github.com/google/uuid"
)

// Presence status constants
const (
	PresenceOnDuty  = "on-duty"
	PresenceOffDuty = "off-duty"
)

// Presence activity constants
const (
	ActivityActive = "active"
	ActivityBusy   = "busy"
	ActivityIdle   = "idle"
)

// StaffPresence tracks a staff member's current duty state. Exactly one row
// per user, created at registration.
type StaffPresence struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	Status           string     `json:"status" db:"status"`
	Activity         string     `json:"activity" db:"activity"`
	Location         string     `json:"location" db:"location"`
	ShiftStart       *time.Time `json:"shift_start" db:"shift_start"`
	ShiftEnd         *time.Time `json:"shift_end" db:"shift_end"`
	LastActive       time.Time  `json:"last_active" db:"last_active"`
	AssignedPatients int        `json:"assigned_patients" db:"assigned_patients"`
}

// PresenceEntry is the roster view: presence joined with the owning user.
type PresenceEntry struct {
	ID               uuid.UUID `json:"id" db:"id"`
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	FullName         string    `json:"full_name" db:"full_name"`
	Role             string    `json:"role" db:"role"`
	Status           string    `json:"status" db:"status"`
	Activity         string    `json:"activity" db:"activity"`
	Location         string    `json:"location" db:"location"`
	AssignedPatients int       `json:"assigned_patients" db:"assigned_patients"`
	LastActive       time.Time `json:"last_active" db:"last_active"`
}

// UpdateStatusRequest represents a presence status update
type UpdateStatusRequest struct {
	Status   string `json:"status" binding:"required,oneof=on-duty off-duty"`
	Activity string `json:"activity" binding:"omitempty,oneof=active busy idle"`
	Location string `json:"location"`
}
