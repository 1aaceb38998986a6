package auth

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
	jwtauth "github.com/medipresence/presence-api/pkg/auth"
	apperrors "github.com/medipresence/presence-api/pkg/errors"
	"github.com/medipresence/presence-api/pkg/security"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakePresenceRepo struct {
	mu        sync.Mutex
	presences map[uuid.UUID]*model.StaffPresence
}

func newFakePresenceRepo() *fakePresenceRepo {
	return &fakePresenceRepo{presences: make(map[uuid.UUID]*model.StaffPresence)}
}

func (r *fakePresenceRepo) Create(_ context.Context, p *model.StaffPresence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presences[p.UserID] = p
	return nil
}

func (r *fakePresenceRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.StaffPresence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.presences[userID]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakePresenceRepo) Update(_ context.Context, p *model.StaffPresence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presences[p.UserID] = p
	return nil
}

func (r *fakePresenceRepo) ListOnDuty(_ context.Context) ([]*model.StaffPresence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.StaffPresence
	for _, p := range r.presences {
		if p.Status == model.PresenceOnDuty {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePresenceRepo) ListRoster(_ context.Context) ([]*model.PresenceEntry, error) {
	return nil, nil
}

type fakeShiftRepo struct {
	mu     sync.Mutex
	shifts []*model.Shift
}

func (r *fakeShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shifts = append(r.shifts, shift)
	return nil
}

func (r *fakeShiftRepo) GetOpenByUserID(_ context.Context, userID uuid.UUID) (*model.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.shifts) - 1; i >= 0; i-- {
		if r.shifts[i].UserID == userID && r.shifts[i].ClockOut == nil {
			return r.shifts[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.shifts {
		if s.ID == shift.ID {
			r.shifts[i] = shift
		}
	}
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
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

func newTestService() (*Service, *fakeUserRepo, *fakePresenceRepo, *fakeShiftRepo) {
	userRepo := newFakeUserRepo()
	presenceRepo := newFakePresenceRepo()
	shiftRepo := &fakeShiftRepo{}
	svc := NewService(
		userRepo,
		presenceRepo,
		shiftRepo,
		security.NewBcryptHasher(4),
		jwtauth.NewJWTService("test-secret", time.Hour),
		audit.NewService(&fakeAuditRepo{}),
	)
	return svc, userRepo, presenceRepo, shiftRepo
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Username: "nurse_amy",
		Email:    "amy@hospital.test",
		Password: "long-enough-password",
		Role:     model.RoleNurse,
		FullName: "Amy Lee",
	}
}

func TestRegisterCreatesUserAndPresence(t *testing.T) {
	svc, _, presenceRepo, _ := newTestService()

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.Equal(t, model.RoleNurse, user.Role)

	p, err := presenceRepo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PresenceOffDuty, p.Status)
	assert.Equal(t, model.ActivityIdle, p.Activity)
	assert.Equal(t, "Unknown", p.Location)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestLoginClocksInAndFlipsPresence(t *testing.T) {
	svc, _, presenceRepo, shiftRepo := newTestService()

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "nurse_amy",
		Password: "long-enough-password",
	}, "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, model.RoleNurse, resp.Role)

	shift, err := shiftRepo.GetOpenByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, shift.ClockOut)

	p, err := presenceRepo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PresenceOnDuty, p.Status)
	assert.Equal(t, model.ActivityActive, p.Activity)
	require.NotNil(t, p.ShiftStart)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Username: "nurse_amy",
		Password: "not-the-password",
	}, "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "ghost",
		Password: "whatever-works",
	}, "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}
