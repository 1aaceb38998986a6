package medication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
	"github.com/medipresence/presence-api/internal/service/audit"
	apperrors "github.com/medipresence/presence-api/pkg/errors"
)

// MedicationService schedules recurring doses and records administrations.
type MedicationService interface {
	Schedule(ctx context.Context, user *model.User, patientID uuid.UUID, req *model.ScheduleMedicationRequest, ipAddress string) (*model.MedicationSchedule, error)
	MarkAdministered(ctx context.Context, user *model.User, id uuid.UUID, req *model.AdministerMedicationRequest, ipAddress string) (*model.MedicationSchedule, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicationSchedule, error)
}

type Service struct {
	repo        repository.MedicationRepository
	patientRepo repository.PatientRepository
	auditor     *audit.Service
}

func NewService(repo repository.MedicationRepository, patientRepo repository.PatientRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		auditor:     auditor,
	}
}

// Schedule creates a dosing record. The first dose is due at the start time.
func (s *Service) Schedule(ctx context.Context, user *model.User, patientID uuid.UUID, req *model.ScheduleMedicationRequest, ipAddress string) (*model.MedicationSchedule, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}

	startTime := time.Now().UTC()
	if req.StartTime != nil {
		startTime = req.StartTime.UTC()
	}

	med := &model.MedicationSchedule{
		ID:              uuid.New(),
		PatientID:       patientID,
		MedicationName:  req.MedicationName,
		Dosage:          req.Dosage,
		Route:           req.Route,
		FrequencyHours:  req.FrequencyHours,
		StartTime:       startTime,
		NextDoseTime:    startTime,
		Status:          model.MedicationScheduled,
		AssignedNurseID: req.AssignedNurseID,
		CreatedBy:       user.ID,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to schedule medication: %w", err)
	}

	s.auditor.Log(user.ID, "medication_added",
		fmt.Sprintf("Medication %s scheduled for patient %s", med.MedicationName, patientID), ipAddress)
	return med, nil
}

// MarkAdministered records a dose. The next dose moves forward by
// frequency_hours from the administration time; calling twice advances
// twice. next_dose_time never moves backwards relative to the
// administration it records.
func (s *Service) MarkAdministered(ctx context.Context, user *model.User, id uuid.UUID, req *model.AdministerMedicationRequest, ipAddress string) (*model.MedicationSchedule, error) {
	med, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("medication schedule")
		}
		return nil, fmt.Errorf("failed to get medication schedule: %w", err)
	}

	adminTime := time.Now().UTC()
	if req != nil && req.AdministeredTime != nil {
		adminTime = req.AdministeredTime.UTC()
	}

	med.LastAdministeredAt = &adminTime
	med.NextDoseTime = adminTime.Add(time.Duration(med.FrequencyHours) * time.Hour)
	med.Status = model.MedicationScheduled

	if err := s.repo.Update(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to update medication schedule: %w", err)
	}

	s.auditor.Log(user.ID, "medication_administered",
		fmt.Sprintf("Medication %s administered for patient %s", med.MedicationName, med.PatientID), ipAddress)
	return med, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicationSchedule, error) {
	meds, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return meds, nil
}
