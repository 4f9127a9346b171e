package get_day_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	msgMissingUserID = "認証が必要です"
	msgMissingDate   = "日付を指定してください"
	msgInvalidParams = "リクエストパラメータが正しくありません"
	msgForbidden     = "管理者権限が必要です"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments
// Query params: date (required, YYYY-MM-DD), staffId, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /admin/appointments - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	req, err := parseRequest(userID, dateStr, query.Get("staffId"), query.Get("includeCancelled"))
	if err != nil {
		h.logger.Warn("GET /admin/appointments - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListDay(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /admin/appointments - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/appointments - Failed to get appointments: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments retrieved successfully: date=%s, count=%d",
		dateStr, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseRequest(userID uuid.UUID, dateStr, staffIDStr, includeCancelledStr string) (*models.ListDayRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	staffID, err := handlers.ParseOptionalUUID(staffIDStr)
	if err != nil {
		return nil, err
	}

	includeCancelled := false
	if includeCancelledStr != "" {
		includeCancelled, err = strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, err
		}
	}

	return &models.ListDayRequest{
		UserID:           userID,
		Date:             date,
		StaffID:          staffID,
		IncludeCancelled: includeCancelled,
	}, nil
}
