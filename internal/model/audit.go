package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only action trail entry. Writes are dispatched
// asynchronously and are not guaranteed to land before the response returns.
type AuditLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	IPAddress *string   `json:"ip_address" db:"ip_address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
