package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/internal/email"
	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
	"github.com/medipresence/presence-api/pkg/messaging"
	"github.com/medipresence/presence-api/pkg/metrics"
)

// DoctorMonitor raises a critical alert when an on-duty doctor has been
// inactive past the offline threshold. Email delivery is best-effort; a
// failed send never blocks the alert itself.
type DoctorMonitor struct {
	presenceRepo repository.PresenceRepository
	userRepo     repository.UserRepository
	alertRepo    repository.AlertRepository
	publisher    messaging.Publisher
	notifier     email.Notifier
	metrics      *metrics.Metrics
	offlineAfter time.Duration
	now          func() time.Time
}

func NewDoctorMonitor(
	presenceRepo repository.PresenceRepository,
	userRepo repository.UserRepository,
	alertRepo repository.AlertRepository,
	publisher messaging.Publisher,
	notifier email.Notifier,
	mt *metrics.Metrics,
	offlineAfter time.Duration,
) *DoctorMonitor {
	return &DoctorMonitor{
		presenceRepo: presenceRepo,
		userRepo:     userRepo,
		alertRepo:    alertRepo,
		publisher:    publisher,
		notifier:     notifier,
		metrics:      mt,
		offlineAfter: offlineAfter,
		now:          time.Now,
	}
}

func (m *DoctorMonitor) Name() string { return "doctor_offline" }

func (m *DoctorMonitor) RunCycle(ctx context.Context) error {
	presences, err := m.presenceRepo.ListOnDuty(ctx)
	if err != nil {
		return fmt.Errorf("failed to list on-duty staff: %w", err)
	}

	now := m.now().UTC()
	for _, p := range presences {
		if now.Sub(p.LastActive) <= m.offlineAfter {
			continue
		}

		user, err := m.userRepo.Get(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user.Role != model.RoleDoctor {
			continue
		}

		userID := user.ID
		alert := &model.Alert{
			ID:            uuid.New(),
			AlertType:     model.AlertDoctorOffline,
			Message:       fmt.Sprintf("Doctor %s inactive for 30+ minutes", user.FullName),
			Priority:      model.PriorityCritical,
			RelatedUserID: &userID,
			CreatedAt:     now,
		}
		if err := m.alertRepo.Create(ctx, alert); err != nil {
			return fmt.Errorf("failed to create doctor alert: %w", err)
		}
		m.metrics.MonitorAlerts.WithLabelValues(model.AlertDoctorOffline).Inc()

		if err := m.publisher.Publish(ctx, messaging.Event{
			Type: messaging.EventEmergencyAlert,
			Data: map[string]interface{}{
				"alert_type": alert.AlertType,
				"message":    alert.Message,
				"user_id":    userID,
			},
		}); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to publish emergency alert")
		}

		if err := m.notifier.NotifyCriticalAlert(alert); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to send alert email")
		}
	}
	return nil
}
