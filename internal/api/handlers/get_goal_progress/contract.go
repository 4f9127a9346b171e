package get_goal_progress

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
)

type GoalService interface {
	ListProgress(ctx context.Context, goalID int64, userID uuid.UUID) (*models.ProgressListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
