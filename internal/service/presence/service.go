package presence

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
	"github.com/medipresence/presence-api/internal/service/audit"
	apperrors "github.com/medipresence/presence-api/pkg/errors"
	"github.com/medipresence/presence-api/pkg/messaging"
)

const rosterCacheKey = "roster"

// rosterTTL bounds staleness of the roster view between mutations that
// bypass this service (login, monitor idle flips).
const rosterTTL = 10 * time.Second

// PresenceService exposes the staff roster and presence transitions.
type PresenceService interface {
	ListRoster(ctx context.Context) ([]*model.PresenceEntry, error)
	UpdateStatus(ctx context.Context, user *model.User, req *model.UpdateStatusRequest, ipAddress string) error
	Logout(ctx context.Context, user *model.User, ipAddress string) error
}

type Service struct {
	presenceRepo repository.PresenceRepository
	shiftRepo    repository.ShiftRepository
	publisher    messaging.Publisher
	auditor      *audit.Service
	cache        *gocache.Cache
}

func NewService(
	presenceRepo repository.PresenceRepository,
	shiftRepo repository.ShiftRepository,
	publisher messaging.Publisher,
	auditor *audit.Service,
) *Service {
	return &Service{
		presenceRepo: presenceRepo,
		shiftRepo:    shiftRepo,
		publisher:    publisher,
		auditor:      auditor,
		cache:        gocache.New(rosterTTL, time.Minute),
	}
}

// ListRoster returns presence joined with user identity for every staff
// member. Served from a short-TTL cache between renders.
func (s *Service) ListRoster(ctx context.Context) ([]*model.PresenceEntry, error) {
	if cached, ok := s.cache.Get(rosterCacheKey); ok {
		return cached.([]*model.PresenceEntry), nil
	}

	entries, err := s.presenceRepo.ListRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	s.cache.SetDefault(rosterCacheKey, entries)
	return entries, nil
}

// UpdateStatus applies a presence mutation for the calling user and
// broadcasts a status_update event.
func (s *Service) UpdateStatus(ctx context.Context, user *model.User, req *model.UpdateStatusRequest, ipAddress string) error {
	presence, err := s.presenceRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("presence record")
		}
		return fmt.Errorf("failed to load presence: %w", err)
	}

	presence.Status = req.Status
	if req.Activity != "" {
		presence.Activity = req.Activity
	}
	if req.Location != "" {
		presence.Location = req.Location
	}
	presence.LastActive = time.Now().UTC()

	if err := s.presenceRepo.Update(ctx, presence); err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}

	s.cache.Delete(rosterCacheKey)
	s.auditor.Log(user.ID, "status_update", fmt.Sprintf("Status: %s, Activity: %s", req.Status, req.Activity), ipAddress)

	s.broadcast(ctx, messaging.Event{
		Type: messaging.EventStatusUpdate,
		Data: map[string]interface{}{"user_id": user.ID},
	})

	return nil
}

// Logout clocks out the open shift and flips presence to off-duty.
func (s *Service) Logout(ctx context.Context, user *model.User, ipAddress string) error {
	now := time.Now().UTC()

	shift, err := s.shiftRepo.GetOpenByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to load open shift: %w", err)
	}
	if shift != nil {
		shift.ClockOut = &now
		if err := s.shiftRepo.Update(ctx, shift); err != nil {
			return fmt.Errorf("failed to clock out: %w", err)
		}
	}

	presence, err := s.presenceRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("presence record")
		}
		return fmt.Errorf("failed to load presence: %w", err)
	}

	presence.Status = model.PresenceOffDuty
	presence.Activity = model.ActivityIdle
	presence.LastActive = now

	if err := s.presenceRepo.Update(ctx, presence); err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}

	s.cache.Delete(rosterCacheKey)
	s.auditor.Log(user.ID, "logout", fmt.Sprintf("User %s logged out", user.Username), ipAddress)

	s.broadcast(ctx, messaging.Event{
		Type: messaging.EventStatusUpdate,
		Data: map[string]interface{}{"user_id": user.ID},
	})

	return nil
}

// broadcast is fire-and-forget; delivery failures never fail the request.
func (s *Service) broadcast(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("event", event.Type).Msg("broadcast failed")
	}
}
