package create_goal

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/goals"
	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
)

const (
	msgMissingUserID  = "認証が必要です"
	msgInvalidRequest = "リクエストの形式が正しくありません"
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

// Handle POST /api/v1/me/goals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /me/goals - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateGoalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /me/goals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	req.UserID = userID

	goal, err := h.service.CreateGoal(r.Context(), &req)
	if err != nil {
		if errors.Is(err, goals.ErrInvalidInput) {
			h.logger.Warn("POST /me/goals - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
			return
		}
		h.logger.Error("POST /me/goals - Failed to create goal: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /me/goals - Goal created successfully: goal_id=%d, user_id=%s", goal.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, goal)
}
