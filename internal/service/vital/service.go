package vital

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

// VitalService records and lists patient vital observations.
type VitalService interface {
	Record(ctx context.Context, user *model.User, patientID uuid.UUID, req *model.CreateVitalRequest, ipAddress string) (*model.VitalRecord, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.VitalRecord, error)
}

type Service struct {
	repo        repository.VitalRepository
	patientRepo repository.PatientRepository
	auditor     *audit.Service
}

func NewService(repo repository.VitalRepository, patientRepo repository.PatientRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		auditor:     auditor,
	}
}

// Record appends an observation set for a patient. Records are immutable.
func (s *Service) Record(ctx context.Context, user *model.User, patientID uuid.UUID, req *model.CreateVitalRequest, ipAddress string) (*model.VitalRecord, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}

	record := &model.VitalRecord{
		ID:               uuid.New(),
		PatientID:        patientID,
		RecordedBy:       user.ID,
		Temperature:      req.Temperature,
		BloodPressure:    req.BloodPressure,
		Pulse:            req.Pulse,
		RespirationRate:  req.RespirationRate,
		OxygenSaturation: req.OxygenSaturation,
		Notes:            req.Notes,
		RecordedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record vitals: %w", err)
	}

	s.auditor.Log(user.ID, "vitals_recorded", fmt.Sprintf("Vitals recorded for patient %s", patientID), ipAddress)
	return record, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.VitalRecord, error) {
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vitals: %w", err)
	}
	return records, nil
}
