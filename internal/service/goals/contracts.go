package goals

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// GoalRepository интерфейс репозитория целей и начислений
type GoalRepository interface {
	Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error)
	GetByID(ctx context.Context, id int64) (*domain.Goal, error)
	UpdateProgress(ctx context.Context, id int64, progress int) error
	AddProgress(ctx context.Context, p *domain.GoalProgress) (*domain.GoalProgress, error)
	ListProgress(ctx context.Context, goalID int64) ([]domain.GoalProgress, error)
	CreateAward(ctx context.Context, a *domain.PointAward) (*domain.PointAward, error)
	GoalPoints(ctx context.Context, userID uuid.UUID) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики целей
type Metrics interface {
	IncGoalsCompleted()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
