package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
	"github.com/medipresence/presence-api/pkg/messaging"
)

// IdleMonitor flips on-duty staff to idle once they have been inactive
// past the threshold. It only touches activity; no alert rows are created.
type IdleMonitor struct {
	presenceRepo repository.PresenceRepository
	publisher    messaging.Publisher
	idleAfter    time.Duration
	now          func() time.Time
}

func NewIdleMonitor(presenceRepo repository.PresenceRepository, publisher messaging.Publisher, idleAfter time.Duration) *IdleMonitor {
	return &IdleMonitor{
		presenceRepo: presenceRepo,
		publisher:    publisher,
		idleAfter:    idleAfter,
		now:          time.Now,
	}
}

func (m *IdleMonitor) Name() string { return "idle" }

func (m *IdleMonitor) RunCycle(ctx context.Context) error {
	presences, err := m.presenceRepo.ListOnDuty(ctx)
	if err != nil {
		return fmt.Errorf("failed to list on-duty staff: %w", err)
	}

	now := m.now().UTC()
	for _, p := range presences {
		if now.Sub(p.LastActive) <= m.idleAfter || p.Activity == model.ActivityIdle {
			continue
		}

		p.Activity = model.ActivityIdle
		if err := m.presenceRepo.Update(ctx, p); err != nil {
			return fmt.Errorf("failed to mark staff idle: %w", err)
		}

		if err := m.publisher.Publish(ctx, messaging.Event{
			Type: messaging.EventStatusUpdate,
			Data: map[string]interface{}{
				"user_id":  p.UserID,
				"activity": model.ActivityIdle,
			},
		}); err != nil {
			log.Warn().Err(err).Str("user_id", p.UserID.String()).Msg("failed to publish idle update")
		}
	}
	return nil
}
