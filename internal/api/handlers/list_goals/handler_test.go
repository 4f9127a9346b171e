package list_goals

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

type fakeService struct {
	userID uuid.UUID
	err    error
}

func (f *fakeService) ListGoals(_ context.Context, userID uuid.UUID) (*models.GoalListResponse, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.GoalListResponse{Goals: []models.GoalResponse{{ID: 2, Progress: 40}, {ID: 1, Progress: 100}}}, nil
}

func TestHandle_OK(t *testing.T) {
	userID := uuid.New()
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/goals", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req.WithContext(middleware.WithUserID(req.Context(), userID)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.GoalListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Goals, 2)
	assert.Equal(t, userID, svc.userID)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&fakeService{err: errors.New("boom")}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/goals", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req.WithContext(middleware.WithUserID(req.Context(), uuid.New())))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/me/goals", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
