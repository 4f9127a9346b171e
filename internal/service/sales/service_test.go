package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	profileRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/internal/service/sales/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeAppointments struct {
	list   []domain.Appointment
	err    error
	filter domain.AppointmentsFilter
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentsFilter) ([]domain.Appointment, error) {
	f.filter = filter
	return f.list, f.err
}

type fakeProfiles struct{ admin uuid.UUID }

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	if id == f.admin {
		return &domain.Profile{ID: id, Role: domain.RoleAdmin}, nil
	}
	return nil, profileRepo.ErrProfileNotFound
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newTestService(repo *fakeAppointments, admin uuid.UUID, now time.Time) *Service {
	policy := scheduling.DefaultPolicy()
	policy.Location = jst
	svc := NewService(repo, &fakeProfiles{admin: admin}, policy, logger.NewNop())
	svc.timeProvider = fixedTime{now: now}
	return svc
}

func TestReport_Daily(t *testing.T) {
	admin := uuid.New()
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, jst)
	cut := uuid.New()

	repo := &fakeAppointments{list: []domain.Appointment{
		{UserID: uuid.New(), ServiceID: cut, ServiceName: "カット", StartTime: time.Date(2026, 10, 15, 11, 0, 0, 0, jst), Price: 6000},
		{UserID: uuid.New(), ServiceID: cut, ServiceName: "カット", StartTime: time.Date(2026, 10, 14, 11, 0, 0, 0, jst), Price: 4000},
		{UserID: uuid.New(), ServiceID: cut, ServiceName: "カット", StartTime: time.Date(2026, 10, 10, 11, 0, 0, 0, jst), Price: 1000},
	}}
	svc := newTestService(repo, admin, now)

	resp, err := svc.Report(context.Background(), &models.ReportRequest{UserID: admin, Period: "daily"})
	require.NoError(t, err)

	assert.Equal(t, "daily", resp.Period)
	assert.Equal(t, int64(6000), resp.Overview.TotalSales)
	assert.Equal(t, 50, resp.Overview.SalesGrowth)
	assert.Equal(t, 1, resp.Overview.TotalAppointments)
	require.Len(t, resp.ByService, 1)
	assert.Equal(t, int64(6000), resp.ByService[0].Sales)
	assert.Len(t, resp.Chart, 3)

	require.NotNil(t, repo.filter.Status)
	assert.Equal(t, domain.StatusCompleted, *repo.filter.Status)
	require.NotNil(t, repo.filter.From)
	assert.True(t, repo.filter.From.Equal(now.AddDate(0, 0, -7)))
	require.NotNil(t, repo.filter.To)
	assert.True(t, repo.filter.To.Equal(now))
}

func TestReport_Monthly_QueryCoversPreviousMonth(t *testing.T) {
	admin := uuid.New()
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, jst)
	repo := &fakeAppointments{}
	svc := newTestService(repo, admin, now)

	resp, err := svc.Report(context.Background(), &models.ReportRequest{UserID: admin, Period: "monthly"})
	require.NoError(t, err)
	assert.True(t, resp.From.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, jst)))
	assert.NotNil(t, resp.Chart)
	assert.NotNil(t, resp.ByStaff)

	// окно графика 180 дней начинается раньше предыдущего месяца
	assert.True(t, repo.filter.From.Equal(now.AddDate(0, 0, -180)))
}

func TestReport_Errors(t *testing.T) {
	admin := uuid.New()
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, jst)

	svc := newTestService(&fakeAppointments{}, admin, now)
	_, err := svc.Report(context.Background(), &models.ReportRequest{UserID: admin, Period: "yearly"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.Report(context.Background(), &models.ReportRequest{UserID: uuid.New(), Period: "daily"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	svc = newTestService(&fakeAppointments{err: errors.New("db down")}, admin, now)
	_, err = svc.Report(context.Background(), &models.ReportRequest{UserID: admin, Period: "weekly"})
	assert.ErrorIs(t, err, ErrInternal)
}
