package get_reward_analytics

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards"
)

const (
	msgMissingUserID = "認証が必要です"
	msgForbidden     = "管理者権限が必要です"
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

// Handle GET /api/v1/admin/rewards/analytics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/rewards/analytics - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Analytics(r.Context(), userID)
	if err != nil {
		if errors.Is(err, rewards.ErrAccessDenied) {
			h.logger.Warn("GET /admin/rewards/analytics - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /admin/rewards/analytics - Failed to build analytics: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/rewards/analytics - Analytics built successfully: exchanges=%d", result.TotalExchanges)
	handlers.RespondJSON(w, http.StatusOK, result)
}
