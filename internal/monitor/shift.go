package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
	"github.com/medipresence/presence-api/pkg/messaging"
	"github.com/medipresence/presence-api/pkg/metrics"
)

// ShiftMonitor raises a high-priority alert for every on-duty staff member
// whose scheduled shift end has passed. The alert repeats each cycle until
// the member clocks out.
type ShiftMonitor struct {
	presenceRepo repository.PresenceRepository
	alertRepo    repository.AlertRepository
	publisher    messaging.Publisher
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewShiftMonitor(
	presenceRepo repository.PresenceRepository,
	alertRepo repository.AlertRepository,
	publisher messaging.Publisher,
	mt *metrics.Metrics,
) *ShiftMonitor {
	return &ShiftMonitor{
		presenceRepo: presenceRepo,
		alertRepo:    alertRepo,
		publisher:    publisher,
		metrics:      mt,
		now:          time.Now,
	}
}

func (m *ShiftMonitor) Name() string { return "shift_overdue" }

func (m *ShiftMonitor) RunCycle(ctx context.Context) error {
	presences, err := m.presenceRepo.ListOnDuty(ctx)
	if err != nil {
		return fmt.Errorf("failed to list on-duty staff: %w", err)
	}

	now := m.now().UTC()
	for _, p := range presences {
		if p.ShiftEnd == nil || !now.After(*p.ShiftEnd) {
			continue
		}

		userID := p.UserID
		alert := &model.Alert{
			ID:            uuid.New(),
			AlertType:     model.AlertShiftOverdue,
			Message:       fmt.Sprintf("Staff member (ID: %s) exceeded shift time", userID),
			Priority:      model.PriorityHigh,
			RelatedUserID: &userID,
			CreatedAt:     now,
		}
		if err := m.alertRepo.Create(ctx, alert); err != nil {
			return fmt.Errorf("failed to create shift alert: %w", err)
		}
		m.metrics.MonitorAlerts.WithLabelValues(model.AlertShiftOverdue).Inc()

		if err := m.publisher.Publish(ctx, messaging.Event{
			Type: messaging.EventAlert,
			Data: map[string]interface{}{
				"alert_type": alert.AlertType,
				"message":    alert.Message,
				"user_id":    userID,
			},
		}); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to publish shift alert")
		}
	}
	return nil
}
