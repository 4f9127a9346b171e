package get_sales_report

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/sales"
	"github.com/m04kA/SMC-SalonService/internal/service/sales/models"
)

const (
	msgMissingUserID = "認証が必要です"
	msgInvalidPeriod = "期間の指定が正しくありません"
	msgForbidden     = "管理者権限が必要です"
)

type Handler struct {
	service SalesService
	logger  Logger
}

func NewHandler(service SalesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/sales
// Query params: period (daily, weekly, monthly; по умолчанию monthly)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/sales - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(domain.PeriodMonthly)
	}

	result, err := h.service.Report(r.Context(), &models.ReportRequest{
		UserID: userID,
		Period: period,
	})
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrInvalidPeriod):
			h.logger.Warn("GET /admin/sales - Invalid period: period=%s", period)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, sales.ErrAccessDenied):
			h.logger.Warn("GET /admin/sales - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/sales - Failed to build report: period=%s, error=%v", period, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/sales - Report built successfully: period=%s, total_sales=%d",
		period, result.Overview.TotalSales)
	handlers.RespondJSON(w, http.StatusOK, result)
}
