package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift is a clock-in/clock-out record, one per login session.
type Shift struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	ClockIn       time.Time  `json:"clock_in" db:"clock_in"`
	ClockOut      *time.Time `json:"clock_out" db:"clock_out"`
	BreakDuration int        `json:"break_duration" db:"break_duration"`
	Overtime      int        `json:"overtime" db:"overtime"`
	Date          string     `json:"date" db:"date"`
}
