package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:          uuid.New(),
		StartTime:   time.Date(2026, 10, 21, 12, 0, 0, 0, time.FixedZone("JST", 9*60*60)),
		ServiceName: "カット",
		StaffName:   "佐藤",
		Price:       5000,
	}
}

func TestClient_SendBookingConfirmation(t *testing.T) {
	var got ConfirmationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, confirmationPath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Email sent successfully"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "secret", time.Second, logger.NewNop())
	err := client.SendBookingConfirmation(context.Background(), "hanako@example.com", testAppointment())
	require.NoError(t, err)

	assert.Equal(t, "hanako@example.com", got.To)
	assert.Equal(t, "2026-10-21T12:00:00+09:00", got.Appointment.StartTime)
	assert.Equal(t, "カット", got.Appointment.ServiceName)
	assert.Equal(t, int64(5000), got.Appointment.Price)
}

func TestClient_SendBookingConfirmation_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"smtp down"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, logger.NewNop())
	err := client.SendBookingConfirmation(context.Background(), "hanako@example.com", testAppointment())

	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestClient_Disabled(t *testing.T) {
	client := NewClient("", "", time.Second, logger.NewNop())
	err := client.SendBookingConfirmation(context.Background(), "hanako@example.com", testAppointment())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestClient_InvalidRequest(t *testing.T) {
	client := NewClient("http://localhost", "", time.Second, logger.NewNop())
	err := client.SendBookingConfirmation(context.Background(), "", testAppointment())
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
