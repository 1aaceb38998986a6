package patient

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
)

type fakePatientRepo struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patients[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakePatientRepo) List(_ context.Context) ([]*model.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p)
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

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
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

func (r *fakeUserRepo) GetByUsername(_ context.Context, _ string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	return nil, nil
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

func newTestService(t *testing.T) (*Service, *model.User, *model.User) {
	t.Helper()
	userRepo := newFakeUserRepo()
	doctor := &model.User{ID: uuid.New(), Role: model.RoleDoctor}
	nurse := &model.User{ID: uuid.New(), Role: model.RoleNurse}
	require.NoError(t, userRepo.Create(context.Background(), doctor))
	require.NoError(t, userRepo.Create(context.Background(), nurse))

	svc := NewService(newFakePatientRepo(), userRepo, audit.NewService(&fakeAuditRepo{}))
	return svc, doctor, nurse
}

func admissionRequest(doctorID, nurseID uuid.UUID) *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		Name:             "John Doe",
		Age:              54,
		Gender:           "male",
		Illness:          "pneumonia",
		RoomNumber:       "204",
		AssignedDoctorID: doctorID,
		AssignedNurseID:  nurseID,
	}
}

func TestCreateAdmitsPatient(t *testing.T) {
	svc, doctor, nurse := newTestService(t)
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	p, err := svc.Create(context.Background(), admin, admissionRequest(doctor.ID, nurse.ID), "")
	require.NoError(t, err)
	assert.Equal(t, model.PatientAdmitted, p.Status)
	assert.False(t, p.AdmittedAt.IsZero())

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.Name)
}

func TestCreateRejectsUnknownDoctor(t *testing.T) {
	svc, _, nurse := newTestService(t)
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	_, err := svc.Create(context.Background(), admin, admissionRequest(uuid.New(), nurse.ID), "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, "assigned doctor")
}

func TestCreateRejectsUnknownNurse(t *testing.T) {
	svc, doctor, _ := newTestService(t)
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	_, err := svc.Create(context.Background(), admin, admissionRequest(doctor.ID, uuid.New()), "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Message, "assigned nurse")
}

func TestGetUnknownPatient(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
