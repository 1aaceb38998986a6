package careplan

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

// CarePlanService manages per-patient care-plan steps.
type CarePlanService interface {
	AddStep(ctx context.Context, user *model.User, patientID uuid.UUID, req *model.CreateCarePlanStepRequest, ipAddress string) (*model.CarePlanStep, error)
	UpdateStatus(ctx context.Context, user *model.User, stepID uuid.UUID, status, ipAddress string) (*model.CarePlanStep, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CarePlanStep, error)
}

type Service struct {
	repo        repository.CarePlanRepository
	patientRepo repository.PatientRepository
	auditor     *audit.Service
}

func NewService(repo repository.CarePlanRepository, patientRepo repository.PatientRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		auditor:     auditor,
	}
}

func (s *Service) AddStep(ctx context.Context, user *model.User, patientID uuid.UUID, req *model.CreateCarePlanStepRequest, ipAddress string) (*model.CarePlanStep, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}

	step := &model.CarePlanStep{
		ID:          uuid.New(),
		PatientID:   patientID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueTime:     req.DueTime,
		Status:      model.CarePlanPending,
		CreatedBy:   user.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, step); err != nil {
		return nil, fmt.Errorf("failed to create care plan step: %w", err)
	}

	s.auditor.Log(user.ID, "care_plan_added",
		fmt.Sprintf("Care plan step '%s' created for patient %s", step.Title, patientID), ipAddress)
	return step, nil
}

// UpdateStatus writes the status string verbatim. A transition to
// "completed" stamps completed_at; a later non-completed status leaves an
// existing completed_at in place.
func (s *Service) UpdateStatus(ctx context.Context, user *model.User, stepID uuid.UUID, status, ipAddress string) (*model.CarePlanStep, error) {
	step, err := s.repo.Get(ctx, stepID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("care plan step")
		}
		return nil, fmt.Errorf("failed to get care plan step: %w", err)
	}

	step.Status = status
	if status == model.CarePlanCompleted {
		now := time.Now().UTC()
		step.CompletedAt = &now
	}

	if err := s.repo.Update(ctx, step); err != nil {
		return nil, fmt.Errorf("failed to update care plan step: %w", err)
	}

	s.auditor.Log(user.ID, "care_plan_update",
		fmt.Sprintf("Care plan step %s marked as %s", stepID, status), ipAddress)
	return step, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CarePlanStep, error) {
	steps, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list care plan: %w", err)
	}
	return steps, nil
}
