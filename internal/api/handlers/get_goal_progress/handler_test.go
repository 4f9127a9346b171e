package get_goal_progress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/goals"
	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	goalID int64
	err    error
}

func (f *fakeService) ListProgress(_ context.Context, goalID int64, _ uuid.UUID) (*models.ProgressListResponse, error) {
	f.goalID = goalID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProgressListResponse{Progress: []models.ProgressResponse{{ID: 1, GoalID: goalID, Progress: 30}}}, nil
}

func newRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/goals/"+id+"/progress", nil)
	req = mux.SetURLVars(req, map[string]string{"goalId": id})
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("4"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ProgressListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Progress, 1)
	assert.Equal(t, int64(4), svc.goalID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		id   string
		err  error
		want int
	}{
		{id: "x", want: http.StatusBadRequest},
		{id: "4", err: goals.ErrGoalNotFound, want: http.StatusNotFound},
		{id: "4", err: goals.ErrAccessDenied, want: http.StatusForbidden},
		{id: "4", err: goals.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(tt.id))

		assert.Equal(t, tt.want, rec.Code, tt.id)
	}
}
