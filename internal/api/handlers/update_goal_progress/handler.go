package update_goal_progress

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/goals"
	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
)

const (
	msgInvalidGoalID  = "目標IDが正しくありません"
	msgMissingUserID  = "認証が必要です"
	msgInvalidRequest = "進捗は0から100の間で指定してください"
	msgNotFound       = "目標が見つかりません"
	msgForbidden      = "この目標を更新する権限がありません"
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

// Handle POST /api/v1/me/goals/{goalId}/progress
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	goalID, err := strconv.ParseInt(mux.Vars(r)["goalId"], 10, 64)
	if err != nil || goalID <= 0 {
		h.logger.Warn("POST /me/goals/{id}/progress - Invalid goal ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGoalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /me/goals/{id}/progress - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateProgressRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /me/goals/{id}/progress - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	req.UserID = userID
	req.GoalID = goalID

	result, err := h.service.UpdateProgress(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, goals.ErrInvalidInput):
			h.logger.Warn("POST /me/goals/{id}/progress - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, goals.ErrGoalNotFound):
			h.logger.Warn("POST /me/goals/{id}/progress - Goal not found: goal_id=%d", goalID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, goals.ErrAccessDenied):
			h.logger.Warn("POST /me/goals/{id}/progress - Access denied: goal_id=%d, user_id=%s", goalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /me/goals/{id}/progress - Failed to update progress: goal_id=%d, error=%v", goalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /me/goals/{id}/progress - Progress recorded: goal_id=%d, progress=%d, points_awarded=%d",
		goalID, result.Goal.Progress, result.PointsAwarded)
	handlers.RespondJSON(w, http.StatusOK, result)
}
