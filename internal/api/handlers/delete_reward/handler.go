package delete_reward

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards"
)

const (
	msgInvalidRewardID = "特典IDが正しくありません"
	msgMissingUserID   = "認証が必要です"
	msgForbidden       = "管理者権限が必要です"
	msgNotFound        = "特典が見つかりません"
	msgInUse           = "交換履歴がある特典は削除できません"
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

// Handle DELETE /api/v1/admin/rewards/{rewardId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rewardID, err := strconv.ParseInt(mux.Vars(r)["rewardId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/rewards/{id} - Invalid reward ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRewardID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/rewards/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), rewardID, userID); err != nil {
		switch {
		case errors.Is(err, rewards.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/rewards/{id} - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rewards.ErrRewardNotFound):
			h.logger.Warn("DELETE /admin/rewards/{id} - Reward not found: reward_id=%d", rewardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rewards.ErrRewardInUse):
			h.logger.Warn("DELETE /admin/rewards/{id} - Reward in use: reward_id=%d", rewardID)
			handlers.RespondConflict(w, msgInUse)

		default:
			h.logger.Error("DELETE /admin/rewards/{id} - Failed to delete reward: reward_id=%d, error=%v", rewardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/rewards/{id} - Reward deleted successfully: reward_id=%d", rewardID)
	w.WriteHeader(http.StatusNoContent)
}
