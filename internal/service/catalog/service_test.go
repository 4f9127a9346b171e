package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeCatalog struct {
	services []domain.Service
	staff    []domain.Staff
	err      error
}

func (f *fakeCatalog) ListServices(context.Context) ([]domain.Service, error) {
	return f.services, f.err
}

func (f *fakeCatalog) GetService(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.services {
		if f.services[i].ID == id {
			return &f.services[i], nil
		}
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalog) ListStaff(context.Context) ([]domain.Staff, error) {
	return f.staff, f.err
}

func (f *fakeCatalog) GetStaff(_ context.Context, id uuid.UUID) (*domain.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.staff {
		if f.staff[i].ID == id {
			return &f.staff[i], nil
		}
	}
	return nil, catalogRepo.ErrStaffNotFound
}

func TestListServices(t *testing.T) {
	repo := &fakeCatalog{services: []domain.Service{
		{ID: uuid.New(), Name: "カット", Duration: 60, Price: 5000},
		{ID: uuid.New(), Name: "カラー", Duration: 90, Price: 8000},
	}}
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, "カット", resp.Services[0].Name)
	assert.Equal(t, int64(8000), resp.Services[1].Price)
}

func TestListServices_Empty(t *testing.T) {
	svc := NewService(&fakeCatalog{}, logger.NewNop())

	resp, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Services)
	assert.Empty(t, resp.Services)
}

func TestGetService(t *testing.T) {
	id := uuid.New()
	svc := NewService(&fakeCatalog{services: []domain.Service{{ID: id, Name: "パーマ"}}}, logger.NewNop())

	resp, err := svc.GetService(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "パーマ", resp.Name)

	_, err = svc.GetService(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetStaff(t *testing.T) {
	id := uuid.New()
	svc := NewService(&fakeCatalog{staff: []domain.Staff{{ID: id, Name: "佐藤", Role: "スタイリスト"}}}, logger.NewNop())

	resp, err := svc.GetStaff(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "スタイリスト", resp.Role)

	_, err = svc.GetStaff(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestRepositoryErrors(t *testing.T) {
	svc := NewService(&fakeCatalog{err: errors.New("db down")}, logger.NewNop())
	ctx := context.Background()

	_, err := svc.ListServices(ctx)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.ListStaff(ctx)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.GetService(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.GetStaff(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}
