package create_goal

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
)

type GoalService interface {
	CreateGoal(ctx context.Context, req *models.CreateGoalRequest) (*models.GoalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
