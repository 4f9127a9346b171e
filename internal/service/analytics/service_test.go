package analytics

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
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeAwards struct {
	awards []domain.PointAward
	err    error
}

func (f *fakeAwards) ListAllAwards(context.Context) ([]domain.PointAward, error) {
	return f.awards, f.err
}

type fakeExchanges struct {
	exchanges []domain.RewardExchange
	err       error
}

func (f *fakeExchanges) ListAllExchanges(context.Context) ([]domain.RewardExchange, error) {
	return f.exchanges, f.err
}

type fakeProfiles struct {
	admin uuid.UUID
	err   error
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id == f.admin {
		return &domain.Profile{ID: id, Role: domain.RoleAdmin}, nil
	}
	if id == uuid.Nil {
		return nil, profileRepo.ErrProfileNotFound
	}
	return &domain.Profile{ID: id, Role: "user"}, nil
}

type readOnlyTx struct{ calls int }

func (tx *readOnlyTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	svc       *Service
	awards    *fakeAwards
	exchanges *fakeExchanges
	profiles  *fakeProfiles
	tx        *readOnlyTx
	admin     uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		awards:    &fakeAwards{},
		exchanges: &fakeExchanges{},
		tx:        &readOnlyTx{},
		admin:     uuid.New(),
	}
	f.profiles = &fakeProfiles{admin: f.admin}
	f.svc = NewService(f.awards, f.exchanges, f.profiles, f.tx, jst, logger.NewNop())
	f.svc.timeProvider = fixedTime{now: now.UTC()}
	return f
}

func TestService_Reports(t *testing.T) {
	f := newFixture()
	user := uuid.New()
	f.awards.awards = []domain.PointAward{award(user, 100, "hair", at(2026, 9, 10, 8))}
	f.exchanges.exchanges = []domain.RewardExchange{exchange(user, 100, "spa", at(2026, 10, 2, 10))}
	ctx := context.Background()

	seasonal, err := f.svc.Seasonal(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, "2026-10", seasonal.MonthlyData[11].Month)
	assert.Equal(t, 1, seasonal.MonthlyData[11].Total)

	points, err := f.svc.Points(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, 100, points.TotalEarned)
	assert.Equal(t, 100, points.TotalUsed)

	cohorts, err := f.svc.Cohorts(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, cohorts.Cohorts, 1)
	assert.Equal(t, "2026-09", cohorts.Cohorts[0].Cohort)

	segments, err := f.svc.Segments(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, segments.CurrentSegments, 5)

	assert.Equal(t, 4, f.tx.calls)
}

func TestService_MonthsFollowSalonTimeZone(t *testing.T) {
	f := newFixture()
	// 2026-09-30 20:00 UTC это уже 1 октября в Токио
	f.exchanges.exchanges = []domain.RewardExchange{
		exchange(uuid.New(), 100, "spa", time.Date(2026, 9, 30, 20, 0, 0, 0, time.UTC)),
	}

	resp, err := f.svc.Seasonal(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MonthlyData[11].Total)
	assert.Zero(t, resp.MonthlyData[10].Total)
}

func TestService_AccessDenied(t *testing.T) {
	f := newFixture()

	for _, user := range []uuid.UUID{uuid.New(), uuid.Nil} {
		_, err := f.svc.Points(context.Background(), user)
		assert.ErrorIs(t, err, ErrAccessDenied)
	}
	assert.Zero(t, f.tx.calls)
}

func TestService_Errors(t *testing.T) {
	t.Run("profile lookup", func(t *testing.T) {
		f := newFixture()
		f.profiles.err = errors.New("db down")

		_, err := f.svc.Cohorts(context.Background(), f.admin)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("awards", func(t *testing.T) {
		f := newFixture()
		f.awards.err = errors.New("db down")

		_, err := f.svc.Segments(context.Background(), f.admin)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("exchanges", func(t *testing.T) {
		f := newFixture()
		f.exchanges.err = errors.New("db down")

		_, err := f.svc.Seasonal(context.Background(), f.admin)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
