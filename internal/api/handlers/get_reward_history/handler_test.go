package get_reward_history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	userID uuid.UUID
	err    error
}

func (f *fakeService) History(_ context.Context, userID uuid.UUID) (*models.ExchangeListResponse, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ExchangeListResponse{Exchanges: []models.ExchangeResponse{
		{ID: 2, RewardID: 1, Points: 300, Reward: &models.RewardResponse{ID: 1, Title: "トリートメント"}},
	}}, nil
}

func newRequest(userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/rewards/history", nil)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandle(t *testing.T) {
	userID := uuid.New()
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ExchangeListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Exchanges, 1)
	require.NotNil(t, body.Exchanges[0].Reward)
	assert.Equal(t, "トリートメント", body.Exchanges[0].Reward.Title)
	assert.Equal(t, userID, svc.userID)
}

func TestHandle_Error(t *testing.T) {
	h := NewHandler(&fakeService{err: rewards.ErrInternal}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(uuid.New()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
