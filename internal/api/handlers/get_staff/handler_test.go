package get_staff

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	id  uuid.UUID
	err error
}

func (f *fakeService) GetStaff(_ context.Context, id uuid.UUID) (*models.StaffResponse, error) {
	f.id = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.StaffResponse{ID: id}, nil
}

func newRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/staff/"+id, nil)
	return mux.SetURLVars(req, map[string]string{"staffId": id})
}

func TestHandle(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{name: "ok", path: id.String(), want: http.StatusOK},
		{name: "bad id", path: "abc", want: http.StatusBadRequest},
		{name: "not found", path: id.String(), err: catalog.ErrStaffNotFound, want: http.StatusNotFound},
		{name: "internal", path: id.String(), err: catalog.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			h := NewHandler(svc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.path))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusBadRequest {
				assert.Equal(t, id, svc.id)
			}
		})
	}
}
