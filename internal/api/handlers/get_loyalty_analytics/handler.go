package get_loyalty_analytics

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/analytics"
)

const (
	msgMissingUserID = "認証が必要です"
	msgForbidden     = "管理者権限が必要です"
	msgUnknownReport = "レポートが見つかりません"
)

// Отчёты, доступные по /admin/analytics/{report}
const (
	ReportSeasonal = "seasonal"
	ReportPoints   = "points"
	ReportCohorts  = "cohorts"
	ReportSegments = "segments"
)

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/analytics/{report}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/analytics - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	report := mux.Vars(r)["report"]
	build, ok := h.report(report)
	if !ok {
		h.logger.Warn("GET /admin/analytics - Unknown report: %q", report)
		handlers.RespondNotFound(w, msgUnknownReport)
		return
	}

	result, err := build(r.Context(), userID)
	if err != nil {
		if errors.Is(err, analytics.ErrAccessDenied) {
			h.logger.Warn("GET /admin/analytics/%s - Access denied: user_id=%s", report, userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /admin/analytics/%s - Failed to build report: %v", report, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/analytics/%s - Report built successfully", report)
	handlers.RespondJSON(w, http.StatusOK, result)
}

type reportFunc func(ctx context.Context, userID uuid.UUID) (interface{}, error)

func (h *Handler) report(name string) (reportFunc, bool) {
	switch name {
	case ReportSeasonal:
		return func(ctx context.Context, userID uuid.UUID) (interface{}, error) {
			return h.service.Seasonal(ctx, userID)
		}, true
	case ReportPoints:
		return func(ctx context.Context, userID uuid.UUID) (interface{}, error) {
			return h.service.Points(ctx, userID)
		}, true
	case ReportCohorts:
		return func(ctx context.Context, userID uuid.UUID) (interface{}, error) {
			return h.service.Cohorts(ctx, userID)
		}, true
	case ReportSegments:
		return func(ctx context.Context, userID uuid.UUID) (interface{}, error) {
			return h.service.Segments(ctx, userID)
		}, true
	default:
		return nil, false
	}
}
