package create_reward

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	req *models.CreateRewardRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateRewardRequest) (*models.RewardResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RewardResponse{ID: 1, Title: req.Title, Points: req.Points}, nil
}

const validBody = `{"title":"ヘッドスパ","description":"15分","points":500,"category":"treatment","stock":3}`

func newRequest(userID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/rewards", strings.NewReader(body))
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandle_Created(t *testing.T) {
	adminID := uuid.New()
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(adminID, validBody))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.req)
	assert.Equal(t, adminID, svc.req.UserID)
	assert.Equal(t, "ヘッドスパ", svc.req.Title)
	assert.Equal(t, 3, svc.req.Stock)
}

func TestHandle_BadBody(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(uuid.New(), `{"title":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.req)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: rewards.ErrAccessDenied, want: http.StatusForbidden},
		{err: fmt.Errorf("%w: points must be positive", rewards.ErrInvalidInput), want: http.StatusBadRequest},
		{err: rewards.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(uuid.New(), validBody))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
