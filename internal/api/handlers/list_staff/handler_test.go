package list_staff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	resp *models.StaffListResponse
	err  error
}

func (f *fakeService) ListStaff(context.Context) (*models.StaffListResponse, error) {
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.StaffListResponse{Staff: []models.StaffResponse{{Name: "佐藤", Role: "stylist"}}}}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/staff", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.StaffListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Staff, 1)
	assert.Equal(t, "stylist", body.Staff[0].Role)
}

func TestHandle_Error(t *testing.T) {
	h := NewHandler(&fakeService{err: catalog.ErrInternal}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/staff", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
