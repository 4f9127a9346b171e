package delete_reward

import (
	"context"

	"github.com/google/uuid"
)

type RewardService interface {
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
