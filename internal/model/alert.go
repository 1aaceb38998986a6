package model

import (
	"time"

	"github.com/google/uuid"
)

// Alert types raised by the background monitors.
const (
	AlertShiftOverdue  = "shift_overdue"
	AlertDoctorOffline = "doctor_offline"
)

// Alert is a system-generated notification. Acknowledged is a one-way
// transition; nothing in the system flips it back.
type Alert struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	AlertType      string     `json:"alert_type" db:"alert_type"`
	Message        string     `json:"message" db:"message"`
	Priority       string     `json:"priority" db:"priority"`
	RelatedUserID  *uuid.UUID `json:"related_user_id" db:"related_user_id"`
	Acknowledged   bool       `json:"acknowledged" db:"acknowledged"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at" db:"acknowledged_at"`
}
