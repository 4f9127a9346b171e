package create_reward

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/rewards/models"
)

type RewardService interface {
	Create(ctx context.Context, req *models.CreateRewardRequest) (*models.RewardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
