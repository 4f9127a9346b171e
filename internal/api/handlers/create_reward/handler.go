package create_reward

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards/models"
)

const (
	msgMissingUserID  = "認証が必要です"
	msgInvalidRequest = "リクエストの形式が正しくありません"
	msgForbidden      = "管理者権限が必要です"
)

type Handler struct {
	service RewardService
	logger  Logger
}

func NewHandler(service RewardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/rewards
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/rewards - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateRewardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/rewards - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	req.UserID = userID

	reward, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rewards.ErrAccessDenied):
			h.logger.Warn("POST /admin/rewards - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rewards.ErrInvalidInput):
			h.logger.Warn("POST /admin/rewards - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /admin/rewards - Failed to create reward: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/rewards - Reward created successfully: reward_id=%d", reward.ID)
	handlers.RespondJSON(w, http.StatusCreated, reward)
}
