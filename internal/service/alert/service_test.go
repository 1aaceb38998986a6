package alert

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
	"github.com/medipresence/presence-api/internal/service/audit"
	apperrors "github.com/medipresence/presence-api/pkg/errors"
)

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts map[uuid.UUID]*model.Alert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[uuid.UUID]*model.Alert)}
}

func (r *fakeAlertRepo) Create(_ context.Context, a *model.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts[a.ID] = a
	return nil
}

func (r *fakeAlertRepo) Get(_ context.Context, id uuid.UUID) (*model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.alerts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAlertRepo) Update(_ context.Context, a *model.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts[a.ID] = a
	return nil
}

func (r *fakeAlertRepo) ListUnacknowledged(_ context.Context) ([]*model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Alert
	for _, a := range r.alerts {
		if !a.Acknowledged {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*model.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) ListRecent(_ context.Context, limit int) ([]*model.AuditLog, error) {
	return nil, nil
}

func seedAlert(t *testing.T, repo *fakeAlertRepo) *model.Alert {
	t.Helper()
	a := &model.Alert{
		ID:        uuid.New(),
		AlertType: model.AlertShiftOverdue,
		Message:   "shift overdue",
		Priority:  model.PriorityHigh,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestAcknowledgeFlipsOnce(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewService(repo, audit.NewService(&fakeAuditRepo{}))
	seeded := seedAlert(t, repo)
	user := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	acked, err := svc.Acknowledge(context.Background(), user, seeded.ID, "")
	require.NoError(t, err)
	assert.True(t, acked.Acknowledged)
	require.NotNil(t, acked.AcknowledgedAt)

	open, err := svc.ListUnacknowledged(context.Background())
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestAcknowledgeIsIdempotent(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewService(repo, audit.NewService(&fakeAuditRepo{}))
	seeded := seedAlert(t, repo)
	user := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	first, err := svc.Acknowledge(context.Background(), user, seeded.ID, "")
	require.NoError(t, err)
	require.NotNil(t, first.AcknowledgedAt)
	stamp := *first.AcknowledgedAt

	second, err := svc.Acknowledge(context.Background(), user, seeded.ID, "")
	require.NoError(t, err)
	assert.True(t, second.Acknowledged)
	require.NotNil(t, second.AcknowledgedAt)
	assert.Equal(t, stamp, *second.AcknowledgedAt)
}

func TestAcknowledgeUnknownAlert(t *testing.T) {
	svc := NewService(newFakeAlertRepo(), audit.NewService(&fakeAuditRepo{}))
	user := &model.User{ID: uuid.New()}

	_, err := svc.Acknowledge(context.Background(), user, uuid.New(), "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
