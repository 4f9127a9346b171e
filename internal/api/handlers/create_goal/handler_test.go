package create_goal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/goals"
	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	req *models.CreateGoalRequest
	err error
}

func (f *fakeService) CreateGoal(_ context.Context, req *models.CreateGoalRequest) (*models.GoalResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.GoalResponse{ID: 1, UserID: req.UserID, Title: req.Title}, nil
}

const validBody = `{"title":"髪を伸ばす","description":"肩まで","category":"hair","deadline":"2026-12-31T00:00:00+09:00"}`

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/goals", strings.NewReader(body))
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	req := newRequest(validBody)
	userID, _ := middleware.GetUserID(req.Context())

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.req)
	assert.Equal(t, userID, svc.req.UserID)
	assert.Equal(t, "hair", svc.req.Category)
	assert.Equal(t, 2026, svc.req.Deadline.Year())
}

func TestHandle_BadBody(t *testing.T) {
	for _, body := range []string{`{`, `{"title":"a","userId":"x"}`, `{"deadline":"tomorrow"}`} {
		svc := &fakeService{}
		h := NewHandler(svc, logger.NewNop())

		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(body))

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Nil(t, svc.req, body)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: goals.ErrInvalidInput, want: http.StatusBadRequest},
		{err: goals.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(validBody))

		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/me/goals", strings.NewReader(validBody)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
