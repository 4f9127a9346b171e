package rewards

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// RewardRepository интерфейс репозитория наград и обменов
type RewardRepository interface {
	ListAvailable(ctx context.Context) ([]domain.Reward, error)
	GetByID(ctx context.Context, id int64) (*domain.Reward, error)
	Create(ctx context.Context, rw *domain.Reward) (*domain.Reward, error)
	Update(ctx context.Context, rw *domain.Reward) error
	Delete(ctx context.Context, id int64) error
	DecrementStock(ctx context.Context, id int64) error
	CreateExchange(ctx context.Context, ex *domain.RewardExchange) (*domain.RewardExchange, error)
	ListExchanges(ctx context.Context, userID uuid.UUID) ([]domain.RewardExchange, error)
	ListAllExchanges(ctx context.Context) ([]domain.RewardExchange, error)
	EarnedPoints(ctx context.Context, userID uuid.UUID) (int, error)
	SpentPoints(ctx context.Context, userID uuid.UUID) (int, error)
}

// ProfileRepository интерфейс репозитория профилей (проверка роли администратора)
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики обмена наград
type Metrics interface {
	IncRewardExchanges()
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
