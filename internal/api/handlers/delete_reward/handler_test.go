package delete_reward

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	id     int64
	userID uuid.UUID
	err    error
}

func (f *fakeService) Delete(_ context.Context, id int64, userID uuid.UUID) error {
	f.id, f.userID = id, userID
	return f.err
}

func newRequest(id string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/rewards/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"rewardId": id})
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandle_NoContent(t *testing.T) {
	adminID := uuid.New()
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("9", adminID))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	assert.Equal(t, int64(9), svc.id)
	assert.Equal(t, adminID, svc.userID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		id   string
		err  error
		want int
	}{
		{id: "nine", want: http.StatusBadRequest},
		{id: "9", err: rewards.ErrAccessDenied, want: http.StatusForbidden},
		{id: "9", err: rewards.ErrRewardNotFound, want: http.StatusNotFound},
		{id: "9", err: rewards.ErrRewardInUse, want: http.StatusConflict},
		{id: "9", err: rewards.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(tt.id, uuid.New()))

		assert.Equal(t, tt.want, rec.Code, tt.err)
	}
}
