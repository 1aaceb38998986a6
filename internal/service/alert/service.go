package alert

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

// AlertService lists open alerts and records acknowledgements.
type AlertService interface {
	ListUnacknowledged(ctx context.Context) ([]*model.Alert, error)
	Acknowledge(ctx context.Context, user *model.User, alertID uuid.UUID, ipAddress string) (*model.Alert, error)
}

type Service struct {
	repo    repository.AlertRepository
	auditor *audit.Service
}

func NewService(repo repository.AlertRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) ListUnacknowledged(ctx context.Context) ([]*model.Alert, error) {
	alerts, err := s.repo.ListUnacknowledged(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// Acknowledge flips the alert to acknowledged. Re-acknowledging keeps the
// original acknowledged_at timestamp.
func (s *Service) Acknowledge(ctx context.Context, user *model.User, alertID uuid.UUID, ipAddress string) (*model.Alert, error) {
	alert, err := s.repo.Get(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("alert")
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	if !alert.Acknowledged {
		now := time.Now().UTC()
		alert.Acknowledged = true
		alert.AcknowledgedAt = &now
		if err := s.repo.Update(ctx, alert); err != nil {
			return nil, fmt.Errorf("failed to update alert: %w", err)
		}
		s.auditor.Log(user.ID, "alert_acknowledged",
			fmt.Sprintf("Alert %s acknowledged", alertID), ipAddress)
	}

	return alert, nil
}
