package get_goal_statistics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) Statistics(context.Context, uuid.UUID) (*models.StatisticsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.StatisticsResponse{TotalGoals: 3, CompletedGoals: 1, ActiveGoals: 2, AverageProgress: 50, TotalPoints: 100}, nil
}

func newRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/goals/statistics", nil)
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
}

func TestHandle_OK(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalGoals)
	assert.Equal(t, 100, body.TotalPoints)
}

func TestHandle_Error(t *testing.T) {
	h := NewHandler(&fakeService{err: errors.New("boom")}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
