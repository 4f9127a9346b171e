package get_staff

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
)

const (
	msgInvalidStaffID = "スタッフIDが正しくありません"
	msgNotFound       = "スタッフが見つかりません"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["staffId"])
	if err != nil {
		h.logger.Warn("GET /staff/{id} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.GetStaff(r.Context(), staffID)
	if err != nil {
		if errors.Is(err, catalog.ErrStaffNotFound) {
			h.logger.Warn("GET /staff/{id} - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /staff/{id} - Failed to get staff: staff_id=%s, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff/{id} - Staff retrieved successfully: staff_id=%s", staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
