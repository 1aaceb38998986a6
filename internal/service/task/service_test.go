package task

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
	"github.com/medipresence/presence-api/internal/service/audit"
	apperrors "github.com/medipresence/presence-api/pkg/errors"
	"github.com/medipresence/presence-api/pkg/messaging"
)

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks []*model.Task
}

func (r *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *fakeTaskRepo) List(_ context.Context) ([]*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.Task(nil), r.tasks...), nil
}

func (r *fakeTaskRepo) ListByAssignee(_ context.Context, userID uuid.UUID) ([]*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Task
	for _, t := range r.tasks {
		if t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	return nil, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []messaging.Event
}

func (p *fakePublisher) Publish(_ context.Context, event messaging.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
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

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakePublisher) {
	t.Helper()
	userRepo := newFakeUserRepo()
	publisher := &fakePublisher{}
	svc := NewService(&fakeTaskRepo{}, userRepo, publisher, audit.NewService(&fakeAuditRepo{}))
	return svc, userRepo, publisher
}

func seedUser(t *testing.T, repo *fakeUserRepo, role string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New(), Username: role + "_user", Role: role}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestCreateTaskBroadcastsNewTask(t *testing.T) {
	svc, userRepo, publisher := newTestService(t)
	admin := seedUser(t, userRepo, model.RoleAdmin)
	nurse := seedUser(t, userRepo, model.RoleNurse)

	created, err := svc.Create(context.Background(), admin, &model.CreateTaskRequest{
		Title:       "Restock ward B",
		Description: "Gloves and saline",
		AssignedTo:  nurse.ID,
		Priority:    model.PriorityMedium,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, created.Status)
	assert.Equal(t, admin.ID, created.AssignedBy)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, messaging.EventNewTask, publisher.events[0].Type)
}

func TestCreateTaskUnknownAssignee(t *testing.T) {
	svc, userRepo, _ := newTestService(t)
	admin := seedUser(t, userRepo, model.RoleAdmin)

	_, err := svc.Create(context.Background(), admin, &model.CreateTaskRequest{
		Title:       "Restock ward B",
		Description: "Gloves and saline",
		AssignedTo:  uuid.New(),
		Priority:    model.PriorityMedium,
	}, "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestListScopesToAssigneeForNonAdmins(t *testing.T) {
	svc, userRepo, _ := newTestService(t)
	admin := seedUser(t, userRepo, model.RoleAdmin)
	nurse := seedUser(t, userRepo, model.RoleNurse)
	doctor := seedUser(t, userRepo, model.RoleDoctor)

	for _, assignee := range []*model.User{nurse, doctor} {
		_, err := svc.Create(context.Background(), admin, &model.CreateTaskRequest{
			Title:       "Rounds",
			Description: "Morning rounds",
			AssignedTo:  assignee.ID,
			Priority:    model.PriorityHigh,
		}, "")
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(context.Background(), nurse)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, nurse.ID, mine[0].AssignedTo)
}
