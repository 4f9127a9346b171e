package update_goal_progress

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
)

type GoalService interface {
	UpdateProgress(ctx context.Context, req *models.UpdateProgressRequest) (*models.UpdateProgressResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
