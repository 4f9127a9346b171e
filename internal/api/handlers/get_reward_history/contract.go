package get_reward_history

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/service/rewards/models"
)

type RewardService interface {
	History(ctx context.Context, userID uuid.UUID) (*models.ExchangeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
