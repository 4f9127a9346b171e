package get_sales_report

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
	"github.com/m04kA/SMC-SalonService/internal/service/sales"
	"github.com/m04kA/SMC-SalonService/internal/service/sales/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	req *models.ReportRequest
	err error
}

func (f *fakeService) Report(_ context.Context, req *models.ReportRequest) (*models.ReportResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReportResponse{
		Period:   req.Period,
		Overview: models.OverviewResponse{TotalSales: 15000, TotalAppointments: 3},
	}, nil
}

func newRequest(target string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandle(t *testing.T) {
	adminID := uuid.New()
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("/api/v1/admin/sales?period=weekly", adminID))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "weekly", body.Period)
	assert.Equal(t, int64(15000), body.Overview.TotalSales)
	assert.Equal(t, adminID, svc.req.UserID)
}

func TestHandle_DefaultPeriod(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("/api/v1/admin/sales", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "monthly", svc.req.Period)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: sales.ErrInvalidPeriod, want: http.StatusBadRequest},
		{err: sales.ErrAccessDenied, want: http.StatusForbidden},
		{err: sales.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("/api/v1/admin/sales?period=yearly", uuid.New()))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
