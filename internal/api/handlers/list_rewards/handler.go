package list_rewards

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
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

// Handle GET /api/v1/rewards
// Возвращает только награды в наличии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListRewards(r.Context())
	if err != nil {
		h.logger.Error("GET /rewards - Failed to list rewards: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rewards - Rewards retrieved successfully: count=%d", len(result.Rewards))
	handlers.RespondJSON(w, http.StatusOK, result)
}
