package update_reward

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards/models"
)

const (
	msgInvalidRewardID = "特典IDが正しくありません"
	msgMissingUserID   = "認証が必要です"
	msgInvalidRequest  = "リクエストの形式が正しくありません"
	msgForbidden       = "管理者権限が必要です"
	msgNotFound        = "特典が見つかりません"
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

// Handle PUT /api/v1/admin/rewards/{rewardId}
// Поля, отсутствующие в теле, не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rewardID, err := strconv.ParseInt(mux.Vars(r)["rewardId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/rewards/{id} - Invalid reward ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRewardID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /admin/rewards/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateRewardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/rewards/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	req.UserID = userID

	reward, err := h.service.Update(r.Context(), rewardID, &req)
	if err != nil {
		switch {
		case errors.Is(err, rewards.ErrAccessDenied):
			h.logger.Warn("PUT /admin/rewards/{id} - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rewards.ErrRewardNotFound):
			h.logger.Warn("PUT /admin/rewards/{id} - Reward not found: reward_id=%d", rewardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rewards.ErrInvalidInput):
			h.logger.Warn("PUT /admin/rewards/{id} - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("PUT /admin/rewards/{id} - Failed to update reward: reward_id=%d, error=%v", rewardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/rewards/{id} - Reward updated successfully: reward_id=%d", rewardID)
	handlers.RespondJSON(w, http.StatusOK, reward)
}
