package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
)

// Service records the audit trail. Writes via Log are dispatched on their
// own goroutine and are best-effort telemetry, not a committed side effect
// of the request.
type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log appends an audit entry asynchronously. The request context is not
// reused: the write must survive the response being sent.
func (s *Service) Log(userID uuid.UUID, action, details, ipAddress string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.LogSync(ctx, userID, action, details, ipAddress); err != nil {
			log.Warn().Err(err).Str("action", action).Msg("audit write failed")
		}
	}()
}

// LogSync appends an audit entry and waits for the write.
func (s *Service) LogSync(ctx context.Context, userID uuid.UUID, action, details, ipAddress string) error {
	entry := &model.AuditLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	if ipAddress != "" {
		entry.IPAddress = &ipAddress
	}
	return s.repo.Create(ctx, entry)
}

// ListRecent returns the newest entries, most recent first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*model.AuditLog, error) {
	return s.repo.ListRecent(ctx, limit)
}
