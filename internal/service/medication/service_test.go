package medication

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

type fakeMedicationRepo struct {
	mu   sync.Mutex
	meds map[uuid.UUID]*model.MedicationSchedule
}

func newFakeMedicationRepo() *fakeMedicationRepo {
	return &fakeMedicationRepo{meds: make(map[uuid.UUID]*model.MedicationSchedule)}
}

func (r *fakeMedicationRepo) Create(_ context.Context, med *model.MedicationSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meds[med.ID] = med
	return nil
}

func (r *fakeMedicationRepo) Get(_ context.Context, id uuid.UUID) (*model.MedicationSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.meds[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMedicationRepo) Update(_ context.Context, med *model.MedicationSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meds[med.ID] = med
	return nil
}

func (r *fakeMedicationRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.MedicationSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.MedicationSchedule
	for _, m := range r.meds {
		if m.PatientID == patientID {
			out = append(out, m)
		}
	}
	return out, nil
}

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

func newTestService() (*Service, *fakePatientRepo) {
	patientRepo := newFakePatientRepo()
	svc := NewService(newFakeMedicationRepo(), patientRepo, audit.NewService(&fakeAuditRepo{}))
	return svc, patientRepo
}

func admitPatient(t *testing.T, repo *fakePatientRepo) *model.Patient {
	t.Helper()
	p := &model.Patient{ID: uuid.New(), Name: "John Doe", Status: model.PatientAdmitted}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestScheduleFirstDoseDueAtStart(t *testing.T) {
	svc, patientRepo := newTestService()
	patient := admitPatient(t, patientRepo)
	user := &model.User{ID: uuid.New(), Role: model.RoleDoctor}

	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	med, err := svc.Schedule(context.Background(), user, patient.ID, &model.ScheduleMedicationRequest{
		MedicationName: "Amoxicillin",
		Dosage:         "500mg",
		FrequencyHours: 8,
		StartTime:      &start,
	}, "")
	require.NoError(t, err)

	assert.Equal(t, start, med.StartTime)
	assert.Equal(t, start, med.NextDoseTime)
	assert.Equal(t, model.MedicationScheduled, med.Status)
	assert.Nil(t, med.LastAdministeredAt)
}

func TestScheduleUnknownPatient(t *testing.T) {
	svc, _ := newTestService()
	user := &model.User{ID: uuid.New()}

	_, err := svc.Schedule(context.Background(), user, uuid.New(), &model.ScheduleMedicationRequest{
		MedicationName: "Amoxicillin",
		Dosage:         "500mg",
		FrequencyHours: 8,
	}, "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestMarkAdministeredAdvancesNextDose(t *testing.T) {
	svc, patientRepo := newTestService()
	patient := admitPatient(t, patientRepo)
	user := &model.User{ID: uuid.New(), Role: model.RoleNurse}

	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	med, err := svc.Schedule(context.Background(), user, patient.ID, &model.ScheduleMedicationRequest{
		MedicationName: "Amoxicillin",
		Dosage:         "500mg",
		FrequencyHours: 8,
		StartTime:      &start,
	}, "")
	require.NoError(t, err)

	// Dose given an hour late still schedules the next one relative to
	// the administration time, not the original slot.
	adminTime := start.Add(time.Hour)
	updated, err := svc.MarkAdministered(context.Background(), user, med.ID, &model.AdministerMedicationRequest{
		AdministeredTime: &adminTime,
	}, "")
	require.NoError(t, err)

	require.NotNil(t, updated.LastAdministeredAt)
	assert.Equal(t, adminTime, *updated.LastAdministeredAt)
	assert.Equal(t, adminTime.Add(8*time.Hour), updated.NextDoseTime)
	assert.Equal(t, model.MedicationScheduled, updated.Status)
}

func TestMarkAdministeredTwiceAdvancesTwice(t *testing.T) {
	svc, patientRepo := newTestService()
	patient := admitPatient(t, patientRepo)
	user := &model.User{ID: uuid.New(), Role: model.RoleNurse}

	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	med, err := svc.Schedule(context.Background(), user, patient.ID, &model.ScheduleMedicationRequest{
		MedicationName: "Insulin",
		Dosage:         "10u",
		FrequencyHours: 6,
		StartTime:      &start,
	}, "")
	require.NoError(t, err)

	first := start
	_, err = svc.MarkAdministered(context.Background(), user, med.ID, &model.AdministerMedicationRequest{
		AdministeredTime: &first,
	}, "")
	require.NoError(t, err)

	second := start.Add(6 * time.Hour)
	updated, err := svc.MarkAdministered(context.Background(), user, med.ID, &model.AdministerMedicationRequest{
		AdministeredTime: &second,
	}, "")
	require.NoError(t, err)

	assert.Equal(t, second.Add(6*time.Hour), updated.NextDoseTime)
}

func TestMarkAdministeredUnknownSchedule(t *testing.T) {
	svc, _ := newTestService()
	user := &model.User{ID: uuid.New()}

	_, err := svc.MarkAdministered(context.Background(), user, uuid.New(), nil, "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
