package exchange_reward

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/service/rewards/models"
)

type RewardService interface {
	Exchange(ctx context.Context, userID uuid.UUID, rewardID int64) (*models.ExchangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
