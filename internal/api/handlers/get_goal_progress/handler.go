package get_goal_progress

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/goals"
)

const (
	msgInvalidGoalID = "目標IDが正しくありません"
	msgMissingUserID = "認証が必要です"
	msgNotFound      = "目標が見つかりません"
	msgForbidden     = "この目標を閲覧する権限がありません"
)

type Handler struct {
	service GoalService
	logger  Logger
}

func NewHandler(service GoalService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/goals/{goalId}/progress
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	goalID, err := strconv.ParseInt(mux.Vars(r)["goalId"], 10, 64)
	if err != nil || goalID <= 0 {
		h.logger.Warn("GET /me/goals/{id}/progress - Invalid goal ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGoalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/goals/{id}/progress - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListProgress(r.Context(), goalID, userID)
	if err != nil {
		switch {
		case errors.Is(err, goals.ErrGoalNotFound):
			h.logger.Warn("GET /me/goals/{id}/progress - Goal not found: goal_id=%d", goalID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, goals.ErrAccessDenied):
			h.logger.Warn("GET /me/goals/{id}/progress - Access denied: goal_id=%d, user_id=%s", goalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /me/goals/{id}/progress - Failed to get progress: goal_id=%d, error=%v", goalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /me/goals/{id}/progress - Progress retrieved: goal_id=%d, entries=%d", goalID, len(result.Progress))
	handlers.RespondJSON(w, http.StatusOK, result)
}
