package get_goal_statistics

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
)

const msgMissingUserID = "認証が必要です"

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

// Handle GET /api/v1/me/goals/statistics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/goals/statistics - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	stats, err := h.service.Statistics(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /me/goals/statistics - Failed to build statistics: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/goals/statistics - Statistics built successfully: user_id=%s, goals=%d", userID, stats.TotalGoals)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
