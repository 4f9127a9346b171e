package exchange_reward

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
	msgInvalidRewardID    = "特典IDが正しくありません"
	msgMissingUserID      = "認証が必要です"
	msgNotFound           = "特典が見つかりません"
	msgOutOfStock         = "在庫切れです"
	msgInsufficientPoints = "ポイントが不足しています"
)

const (
	CodeOutOfStock         = "OUT_OF_STOCK"
	CodeInsufficientPoints = "INSUFFICIENT_POINTS"
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

// Handle POST /api/v1/rewards/{rewardId}/exchange
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rewardID, err := strconv.ParseInt(mux.Vars(r)["rewardId"], 10, 64)
	if err != nil || rewardID <= 0 {
		h.logger.Warn("POST /rewards/{id}/exchange - Invalid reward ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRewardID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /rewards/{id}/exchange - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	exchange, err := h.service.Exchange(r.Context(), userID, rewardID)
	if err != nil {
		switch {
		case errors.Is(err, rewards.ErrInvalidInput):
			h.logger.Warn("POST /rewards/{id}/exchange - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRewardID)

		case errors.Is(err, rewards.ErrRewardNotFound):
			h.logger.Warn("POST /rewards/{id}/exchange - Reward not found: reward_id=%d", rewardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rewards.ErrOutOfStock):
			h.logger.Warn("POST /rewards/{id}/exchange - Out of stock: reward_id=%d", rewardID)
			handlers.RespondErrorCode(w, http.StatusConflict, CodeOutOfStock, msgOutOfStock)

		case errors.Is(err, rewards.ErrInsufficientPoints):
			h.logger.Warn("POST /rewards/{id}/exchange - Insufficient points: user_id=%s, reward_id=%d", userID, rewardID)
			handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, CodeInsufficientPoints, msgInsufficientPoints)

		default:
			h.logger.Error("POST /rewards/{id}/exchange - Failed to exchange reward: reward_id=%d, error=%v", rewardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rewards/{id}/exchange - Reward exchanged successfully: exchange_id=%d, user_id=%s",
		exchange.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, exchange)
}
