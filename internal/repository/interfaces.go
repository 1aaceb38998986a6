package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medipresence/presence-api/internal/model"
)

// ErrNotFound is returned by all repositories for missing rows.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		List(ctx context.Context) ([]*model.User, error)
	}

	PresenceRepository interface {
		Create(ctx context.Context, presence *model.StaffPresence) error
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.StaffPresence, error)
		Update(ctx context.Context, presence *model.StaffPresence) error
		ListOnDuty(ctx context.Context) ([]*model.StaffPresence, error)
		ListRoster(ctx context.Context) ([]*model.PresenceEntry, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
	}

	VitalRepository interface {
		Create(ctx context.Context, record *model.VitalRecord) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.VitalRecord, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, med *model.MedicationSchedule) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicationSchedule, error)
		Update(ctx context.Context, med *model.MedicationSchedule) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicationSchedule, error)
	}

	CarePlanRepository interface {
		Create(ctx context.Context, step *model.CarePlanStep) error
		Get(ctx context.Context, id uuid.UUID) (*model.CarePlanStep, error)
		Update(ctx context.Context, step *model.CarePlanStep) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CarePlanStep, error)
	}

	TaskRepository interface {
		Create(ctx context.Context, task *model.Task) error
		List(ctx context.Context) ([]*model.Task, error)
		ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*model.Task, error)
	}

	AlertRepository interface {
		Create(ctx context.Context, alert *model.Alert) error
		Get(ctx context.Context, id uuid.UUID) (*model.Alert, error)
		Update(ctx context.Context, alert *model.Alert) error
		ListUnacknowledged(ctx context.Context) ([]*model.Alert, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		ListRecent(ctx context.Context, limit int) ([]*model.AuditLog, error)
	}

	ShiftRepository interface {
		Create(ctx context.Context, shift *model.Shift) error
		GetOpenByUserID(ctx context.Context, userID uuid.UUID) (*model.Shift, error)
		Update(ctx context.Context, shift *model.Shift) error
	}
)
