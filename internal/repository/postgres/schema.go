package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// The schema is created at startup if absent. There is no migration
// mechanism beyond this.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		full_name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS staff_presence (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id),
		status TEXT NOT NULL DEFAULT 'off-duty',
		activity TEXT NOT NULL DEFAULT 'idle',
		location TEXT NOT NULL DEFAULT 'Unknown',
		shift_start TIMESTAMPTZ,
		shift_end TIMESTAMPTZ,
		last_active TIMESTAMPTZ NOT NULL,
		assigned_patients INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		age INT NOT NULL,
		gender TEXT NOT NULL,
		illness TEXT NOT NULL,
		room_number TEXT NOT NULL,
		assigned_doctor_id UUID NOT NULL REFERENCES users(id),
		assigned_nurse_id UUID NOT NULL REFERENCES users(id),
		medical_history TEXT,
		status TEXT NOT NULL DEFAULT 'admitted',
		admitted_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vital_records (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		recorded_by UUID NOT NULL REFERENCES users(id),
		temperature DOUBLE PRECISION,
		blood_pressure TEXT,
		pulse INT,
		respiration_rate INT,
		oxygen_saturation DOUBLE PRECISION,
		notes TEXT,
		recorded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS medication_schedules (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		medication_name TEXT NOT NULL,
		dosage TEXT NOT NULL,
		route TEXT,
		frequency_hours INT NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		next_dose_time TIMESTAMPTZ NOT NULL,
		last_administered_at TIMESTAMPTZ,
		status TEXT NOT NULL DEFAULT 'scheduled',
		assigned_nurse_id UUID REFERENCES users(id),
		created_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS care_plan_steps (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		title TEXT NOT NULL,
		description TEXT,
		assigned_to UUID REFERENCES users(id),
		due_time TIMESTAMPTZ,
		status TEXT NOT NULL DEFAULT 'pending',
		created_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		assigned_to UUID NOT NULL REFERENCES users(id),
		assigned_by UUID NOT NULL REFERENCES users(id),
		priority TEXT NOT NULL DEFAULT 'medium',
		status TEXT NOT NULL DEFAULT 'pending',
		deadline TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id UUID PRIMARY KEY,
		alert_type TEXT NOT NULL,
		message TEXT NOT NULL,
		priority TEXT NOT NULL,
		related_user_id UUID REFERENCES users(id),
		acknowledged BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		acknowledged_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		action TEXT NOT NULL,
		details TEXT NOT NULL,
		ip_address TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shifts (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		clock_in TIMESTAMPTZ NOT NULL,
		clock_out TIMESTAMPTZ,
		break_duration INT NOT NULL DEFAULT 0,
		overtime INT NOT NULL DEFAULT 0,
		date TEXT NOT NULL
	)`,
}

// EnsureSchema creates all tables if they do not exist.
func EnsureSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
