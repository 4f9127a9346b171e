package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	profileRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

var jst = time.FixedZone("JST", 9*60*60)

type fakeAppointments struct {
	byID      map[uuid.UUID]*domain.Appointment
	list      []domain.Appointment
	listErr   error
	updateErr error
	filter    domain.AppointmentsFilter
	updated   map[uuid.UUID]domain.AppointmentStatus
}

func (f *fakeAppointments) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentsFilter) ([]domain.Appointment, error) {
	f.filter = filter
	return f.list, f.listErr
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id] = status
	return nil
}

type fakeProfiles struct {
	profiles map[uuid.UUID]*domain.Profile
	err      error
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return p, nil
}

type fakePublisher struct {
	types []string
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, _ *domain.Appointment) error {
	f.types = append(f.types, eventType)
	return f.err
}

type passThroughTx struct{ calls int }

func (tx *passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	svc          *Service
	appointments *fakeAppointments
	publisher    *fakePublisher
	tx           *passThroughTx
	owner        uuid.UUID
	admin        uuid.UUID
	stranger     uuid.UUID
	appt         *domain.Appointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		owner:     uuid.New(),
		admin:     uuid.New(),
		stranger:  uuid.New(),
		publisher: &fakePublisher{},
		tx:        &passThroughTx{},
	}
	f.appt = &domain.Appointment{
		ID:        uuid.New(),
		UserID:    f.owner,
		ServiceID: uuid.New(),
		StaffID:   uuid.New(),
		StartTime: time.Date(2026, 10, 22, 14, 0, 0, 0, jst),
		EndTime:   time.Date(2026, 10, 22, 15, 0, 0, 0, jst),
		Status:    domain.StatusConfirmed,
		Price:     5000,
	}
	f.appointments = &fakeAppointments{
		byID:    map[uuid.UUID]*domain.Appointment{f.appt.ID: f.appt},
		updated: map[uuid.UUID]domain.AppointmentStatus{},
	}
	profiles := &fakeProfiles{profiles: map[uuid.UUID]*domain.Profile{
		f.owner:    {ID: f.owner, Role: "customer"},
		f.stranger: {ID: f.stranger, Role: "customer"},
		f.admin:    {ID: f.admin, Role: domain.RoleAdmin},
	}}

	policy := scheduling.DefaultPolicy()
	policy.Location = jst

	f.svc = NewService(f.appointments, profiles, f.publisher, f.tx, policy, logger.NewNop())
	// 2026-10-20 08:00 JST: до записи больше 24 часов
	f.svc.timeProvider = fixedTime{now: time.Date(2026, 10, 20, 8, 0, 0, 0, jst)}
	return f
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.GetByID(ctx, f.appt.ID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-22", resp.Date)
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "15:00", resp.EndTime)

	_, err = f.svc.GetByID(ctx, f.appt.ID, f.admin)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, f.appt.ID, f.stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, uuid.New(), f.owner)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListUserAppointments(t *testing.T) {
	f := newFixture(t)
	f.appointments.list = []domain.Appointment{*f.appt}

	status := "confirmed"
	resp, err := f.svc.ListUserAppointments(context.Background(), &models.ListUserAppointmentsRequest{
		UserID: f.owner,
		Status: &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)

	filter := f.appointments.filter
	require.NotNil(t, filter.UserID)
	assert.Equal(t, f.owner, *filter.UserID)
	assert.True(t, filter.NewestFirst)
	assert.True(t, filter.IncludeCancelled)
	require.NotNil(t, filter.Status)
	assert.Equal(t, domain.StatusConfirmed, *filter.Status)
}

func TestListUserAppointments_InvalidStatus(t *testing.T) {
	f := newFixture(t)
	status := "unknown"

	_, err := f.svc.ListUserAppointments(context.Background(), &models.ListUserAppointmentsRequest{
		UserID: f.owner,
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListUserAppointments_RepositoryError(t *testing.T) {
	f := newFixture(t)
	f.appointments.listErr = errors.New("connection refused")

	_, err := f.svc.ListUserAppointments(context.Background(), &models.ListUserAppointmentsRequest{UserID: f.owner})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Cancel(context.Background(), f.appt.ID, f.owner)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, f.appointments.updated[f.appt.ID])
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{events.TypeAppointmentCancelled}, f.publisher.types)
}

func TestCancel_PublishFailureIgnored(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	err := f.svc.Cancel(context.Background(), f.appt.ID, f.owner)
	assert.NoError(t, err)
}

func TestCancel_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture)
		userID  func(f *fixture) uuid.UUID
		wantErr error
	}{
		{
			name:    "not owner",
			userID:  func(f *fixture) uuid.UUID { return f.stranger },
			wantErr: ErrAccessDenied,
		},
		{
			name:    "admin is not owner",
			userID:  func(f *fixture) uuid.UUID { return f.admin },
			wantErr: ErrAccessDenied,
		},
		{
			name:    "already cancelled",
			prepare: func(f *fixture) { f.appt.Status = domain.StatusCancelled },
			wantErr: ErrCannotCancel,
		},
		{
			name:    "completed",
			prepare: func(f *fixture) { f.appt.Status = domain.StatusCompleted },
			wantErr: ErrCannotCancel,
		},
		{
			name: "less than 24 hours left",
			prepare: func(f *fixture) {
				f.svc.timeProvider = fixedTime{now: f.appt.StartTime.Add(-23*time.Hour - 59*time.Minute)}
			},
			wantErr: ErrCancellationDeadline,
		},
		{
			name:    "update conflict",
			prepare: func(f *fixture) { f.appointments.updateErr = appointmentRepo.ErrAppointmentNotFound },
			wantErr: ErrAppointmentNotFound,
		},
		{
			name:    "repository failure",
			prepare: func(f *fixture) { f.appointments.updateErr = errors.New("timeout") },
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.prepare != nil {
				tt.prepare(f)
			}
			userID := f.owner
			if tt.userID != nil {
				userID = tt.userID(f)
			}

			err := f.svc.Cancel(context.Background(), f.appt.ID, userID)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.publisher.types)
		})
	}
}

func TestCancel_ExactlyAtDeadline(t *testing.T) {
	f := newFixture(t)
	f.svc.timeProvider = fixedTime{now: f.appt.StartTime.Add(-24 * time.Hour)}

	assert.NoError(t, f.svc.Cancel(context.Background(), f.appt.ID, f.owner))
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.UpdateStatus(context.Background(), f.appt.ID, &models.UpdateStatusRequest{
		UserID: f.admin,
		Status: "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, domain.StatusCompleted, f.appointments.updated[f.appt.ID])
	assert.Equal(t, []string{events.TypeAppointmentStatusChanged}, f.publisher.types)
}

func TestUpdateStatus_CancelPublishesCancelled(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), f.appt.ID, &models.UpdateStatusRequest{
		UserID: f.admin,
		Status: "cancelled",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{events.TypeAppointmentCancelled}, f.publisher.types)
}

func TestUpdateStatus_Errors(t *testing.T) {
	tests := []struct {
		name      string
		userID    func(f *fixture) uuid.UUID
		status    string
		updateErr error
		wantErr   error
	}{
		{name: "not admin", userID: func(f *fixture) uuid.UUID { return f.owner }, status: "completed", wantErr: ErrAccessDenied},
		{name: "unknown profile", userID: func(*fixture) uuid.UUID { return uuid.New() }, status: "completed", wantErr: ErrAccessDenied},
		{name: "invalid status", status: "done", wantErr: ErrInvalidInput},
		{name: "slot taken on restore", status: "confirmed", updateErr: appointmentRepo.ErrSlotTaken, wantErr: ErrSlotTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.appointments.updateErr = tt.updateErr
			userID := f.admin
			if tt.userID != nil {
				userID = tt.userID(f)
			}

			_, err := f.svc.UpdateStatus(context.Background(), f.appt.ID, &models.UpdateStatusRequest{
				UserID: userID,
				Status: tt.status,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListDay(t *testing.T) {
	f := newFixture(t)
	f.appointments.list = []domain.Appointment{*f.appt}
	staffID := f.appt.StaffID

	resp, err := f.svc.ListDay(context.Background(), &models.ListDayRequest{
		UserID:  f.admin,
		Date:    time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
		StaffID: &staffID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	filter := f.appointments.filter
	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	assert.True(t, filter.From.Equal(time.Date(2026, 10, 22, 0, 0, 0, 0, jst)))
	assert.True(t, filter.To.Equal(time.Date(2026, 10, 23, 0, 0, 0, 0, jst)))
	assert.Equal(t, &staffID, filter.StaffID)
	assert.False(t, filter.NewestFirst)
}

func TestListDay_NotAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListDay(context.Background(), &models.ListDayRequest{
		UserID: f.owner,
		Date:   time.Date(2026, 10, 22, 0, 0, 0, 0, jst),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
