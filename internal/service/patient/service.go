package patient

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

// PatientService handles patient admission and lookup.
type PatientService interface {
	Create(ctx context.Context, user *model.User, req *model.CreatePatientRequest, ipAddress string) (*model.Patient, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
}

type Service struct {
	repo     repository.PatientRepository
	userRepo repository.UserRepository
	auditor  *audit.Service
}

func NewService(repo repository.PatientRepository, userRepo repository.UserRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		auditor:  auditor,
	}
}

// Create admits a patient. The assigned doctor and nurse must exist.
func (s *Service) Create(ctx context.Context, user *model.User, req *model.CreatePatientRequest, ipAddress string) (*model.Patient, error) {
	if err := s.ensureUserExists(ctx, req.AssignedDoctorID, "assigned doctor"); err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(ctx, req.AssignedNurseID, "assigned nurse"); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		ID:               uuid.New(),
		Name:             req.Name,
		Age:              req.Age,
		Gender:           req.Gender,
		Illness:          req.Illness,
		RoomNumber:       req.RoomNumber,
		AssignedDoctorID: req.AssignedDoctorID,
		AssignedNurseID:  req.AssignedNurseID,
		MedicalHistory:   req.MedicalHistory,
		Status:           model.PatientAdmitted,
		AdmittedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.auditor.Log(user.ID, "patient_created", fmt.Sprintf("Patient %s registered", patient.Name), ipAddress)
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) ensureUserExists(ctx context.Context, id uuid.UUID, label string) error {
	_, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(label)
		}
		return fmt.Errorf("failed to check %s: %w", label, err)
	}
	return nil
}
