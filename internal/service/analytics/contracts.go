package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AwardRepository источник начислений баллов
type AwardRepository interface {
	ListAllAwards(ctx context.Context) ([]domain.PointAward, error)
}

// ExchangeRepository источник обменов наград
type ExchangeRepository interface {
	ListAllExchanges(ctx context.Context) ([]domain.RewardExchange, error)
}

// ProfileRepository интерфейс репозитория профилей (проверка роли администратора)
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
