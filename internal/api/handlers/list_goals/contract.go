package list_goals

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
)

type GoalService interface {
	ListGoals(ctx context.Context, userID uuid.UUID) (*models.GoalListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
