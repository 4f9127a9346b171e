package get_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	resp   *models.AppointmentResponse
	err    error
	id     uuid.UUID
	userID uuid.UUID
}

func (f *fakeService) GetByID(_ context.Context, id, userID uuid.UUID) (*models.AppointmentResponse, error) {
	f.id, f.userID = id, userID
	return f.resp, f.err
}

func newRequest(id string, userID *uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"appointmentId": id})
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	return req
}

func TestHandle_OK(t *testing.T) {
	id, userID := uuid.New(), uuid.New()
	svc := &fakeService{resp: &models.AppointmentResponse{ID: id, UserID: userID, Status: "confirmed"}}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(id.String(), &userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, id, body.ID)
	assert.Equal(t, id, svc.id)
	assert.Equal(t, userID, svc.userID)
}

func TestHandle_BadRequest(t *testing.T) {
	userID := uuid.New()
	h := NewHandler(&fakeService{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("not-a-uuid", &userID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingUser(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(uuid.NewString(), nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: appointments.ErrAppointmentNotFound, want: http.StatusNotFound},
		{err: appointments.ErrAccessDenied, want: http.StatusForbidden},
		{err: fmt.Errorf("%w: db down", appointments.ErrInternal), want: http.StatusInternalServerError},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			userID := uuid.New()
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(uuid.NewString(), &userID))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
