package update_appointment_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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
	id  uuid.UUID
	req *models.UpdateStatusRequest
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	f.id, f.req = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: req.Status}, nil
}

func newRequest(id string, userID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/appointments/"+id+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"appointmentId": id})
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandle_OK(t *testing.T) {
	id, adminID := uuid.New(), uuid.New()
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(id.String(), adminID, `{"status":"completed"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "completed", body.Status)
	assert.Equal(t, id, svc.id)
	assert.Equal(t, adminID, svc.req.UserID)
}

func TestHandle_BadBody(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	for _, body := range []string{``, `{`, `{"status":"completed","userId":"x"}`} {
		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(uuid.NewString(), uuid.New(), body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Nil(t, svc.req)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: appointments.ErrInvalidInput, want: http.StatusBadRequest},
		{err: appointments.ErrAccessDenied, want: http.StatusForbidden},
		{err: appointments.ErrAppointmentNotFound, want: http.StatusNotFound},
		{err: appointments.ErrSlotTaken, want: http.StatusConflict},
		{err: appointments.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(uuid.NewString(), uuid.New(), `{"status":"cancelled"}`))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
