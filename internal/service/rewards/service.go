package rewards

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	profileRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/profile"
	rewardRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/reward"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards/models"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// Service сервис наград и баллов лояльности
type Service struct {
	rewardRepo   RewardRepository
	profileRepo  ProfileRepository
	txManager    TransactionManager
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса наград
// loc задаёт часовой пояс для дневной аналитики
func NewService(
	rewardRepo RewardRepository,
	profileRepo ProfileRepository,
	txManager TransactionManager,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		rewardRepo:   rewardRepo,
		profileRepo:  profileRepo,
		txManager:    txManager,
		metrics:      metrics,
		location:     loc,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// ListRewards возвращает награды в наличии, от дешёвых к дорогим
// Публичный метод - доступен всем
func (s *Service) ListRewards(ctx context.Context) (*models.RewardListResponse, error) {
	s.logger.Info("ListRewards: fetching available rewards")

	list, err := s.rewardRepo.ListAvailable(ctx)
	if err != nil {
		s.logger.Error("ListRewards: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRewards - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListRewards: fetched %d rewards", len(list))
	return models.FromDomainRewardList(list), nil
}

// AvailablePoints возвращает баланс баллов пользователя
// Доступно = начислено - потрачено на обмены
func (s *Service) AvailablePoints(ctx context.Context, userID uuid.UUID) (*models.PointsResponse, error) {
	s.logger.Info("AvailablePoints: fetching points for user=%s", userID)

	resp, err := s.points(ctx, "AvailablePoints", userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AvailablePoints: user=%s has %d points", userID, resp.Available)
	return resp, nil
}

// Exchange обменивает баллы пользователя на награду
// Награда блокируется на время транзакции, остаток уменьшается на единицу
func (s *Service) Exchange(ctx context.Context, userID uuid.UUID, rewardID int64) (*models.ExchangeResponse, error) {
	s.logger.Info("Exchange: user=%s exchanging reward id=%d", userID, rewardID)

	if rewardID <= 0 {
		return nil, fmt.Errorf("%w: reward id must be positive", ErrInvalidInput)
	}

	var created *domain.RewardExchange
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем награду с блокировкой
		reward, err := s.getReward(txCtx, "Exchange", rewardID)
		if err != nil {
			return err
		}

		// 2. Проверяем остаток
		if !reward.InStock() {
			s.logger.Warn("Exchange: reward id=%d is out of stock", rewardID)
			return ErrOutOfStock
		}

		// 3. Проверяем баланс
		balance, err := s.points(txCtx, "Exchange", userID)
		if err != nil {
			return err
		}
		if balance.Available < reward.Points {
			s.logger.Warn("Exchange: user=%s has %d points, reward id=%d costs %d",
				userID, balance.Available, rewardID, reward.Points)
			return ErrInsufficientPoints
		}

		// 4. Записываем обмен по текущей цене награды
		ex, err := s.rewardRepo.CreateExchange(txCtx, &domain.RewardExchange{
			UserID:   userID,
			RewardID: reward.ID,
			Points:   reward.Points,
		})
		if err != nil {
			s.logger.Error("Exchange: failed to create exchange for user=%s: %v", userID, err)
			return fmt.Errorf("%w: Exchange - create exchange: %w", ErrInternal, err)
		}

		// 5. Уменьшаем остаток
		if err := s.rewardRepo.DecrementStock(txCtx, reward.ID); err != nil {
			if errors.Is(err, rewardRepo.ErrRewardNotFound) {
				s.logger.Warn("Exchange: reward id=%d ran out of stock during exchange", rewardID)
				return ErrOutOfStock
			}
			s.logger.Error("Exchange: failed to decrement stock for reward id=%d: %v", rewardID, err)
			return fmt.Errorf("%w: Exchange - decrement stock: %w", ErrInternal, err)
		}

		reward.Stock--
		ex.Reward = reward
		created = ex
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			s.logger.Error("Exchange: transaction failed for user=%s: %v", userID, err)
			return nil, fmt.Errorf("%w: Exchange - transaction: %w", ErrInternal, err)
		}
		return nil, err
	}

	s.metrics.IncRewardExchanges()
	s.logger.Info("Exchange: user=%s exchanged reward id=%d for %d points", userID, rewardID, created.Points)
	return models.FromDomainExchange(created), nil
}

// History возвращает историю обменов пользователя, новые первыми
func (s *Service) History(ctx context.Context, userID uuid.UUID) (*models.ExchangeListResponse, error) {
	s.logger.Info("History: fetching exchanges for user=%s", userID)

	list, err := s.rewardRepo.ListExchanges(ctx, userID)
	if err != nil {
		s.logger.Error("History: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: History - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("History: fetched %d exchanges for user=%s", len(list), userID)
	return models.FromDomainExchangeList(list), nil
}

// Create создает новую награду
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateRewardRequest) (*models.RewardResponse, error) {
	s.logger.Info("Create: creating reward title=%q by user=%s", req.Title, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	reward := req.ToDomainReward()
	if err := validateReward(reward); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.rewardRepo.Create(ctx, reward)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created reward id=%d", created.ID)
	return models.FromDomainReward(created), nil
}

// Update обновляет существующую награду
// Доступно только администратору, поддерживает частичное обновление
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateRewardRequest) (*models.RewardResponse, error) {
	s.logger.Info("Update: updating reward id=%d by user=%s", id, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	reward, err := s.getReward(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	req.ApplyToReward(reward)
	if err := validateReward(reward); err != nil {
		s.logger.Warn("Update: validation failed for reward id=%d: %v", id, err)
		return nil, err
	}

	if err := s.rewardRepo.Update(ctx, reward); err != nil {
		if errors.Is(err, rewardRepo.ErrRewardNotFound) {
			s.logger.Warn("Update: reward id=%d not found during update", id)
			return nil, ErrRewardNotFound
		}
		s.logger.Error("Update: repository error for reward id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated reward id=%d", id)
	return models.FromDomainReward(reward), nil
}

// Delete удаляет награду
// Доступно только администратору, награду с обменами удалить нельзя
func (s *Service) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	s.logger.Info("Delete: deleting reward id=%d by user=%s", id, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.rewardRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, rewardRepo.ErrRewardNotFound):
			s.logger.Warn("Delete: reward id=%d not found", id)
			return ErrRewardNotFound
		case errors.Is(err, rewardRepo.ErrRewardInUse):
			s.logger.Warn("Delete: reward id=%d has exchanges", id)
			return ErrRewardInUse
		}
		s.logger.Error("Delete: repository error for reward id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reward id=%d", id)
	return nil
}

// Analytics возвращает сводку по обменам наград
// Доступно только администратору
func (s *Service) Analytics(ctx context.Context, userID uuid.UUID) (*models.AnalyticsResponse, error) {
	s.logger.Info("Analytics: building reward analytics by user=%s", userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return nil, err
	}

	exchanges, err := s.rewardRepo.ListAllExchanges(ctx)
	if err != nil {
		s.logger.Error("Analytics: repository error: %v", err)
		return nil, fmt.Errorf("%w: Analytics - repository error: %w", ErrInternal, err)
	}

	resp := buildAnalytics(exchanges, s.timeProvider.Now(), s.location)
	s.logger.Info("Analytics: %d exchanges, %d active users", resp.TotalExchanges, resp.ActiveUsers)
	return resp, nil
}

// Вспомогательные методы

func (s *Service) getReward(ctx context.Context, op string, id int64) (*domain.Reward, error) {
	reward, err := s.rewardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rewardRepo.ErrRewardNotFound) {
			s.logger.Warn("%s: reward id=%d not found", op, id)
			return nil, ErrRewardNotFound
		}
		s.logger.Error("%s: repository error for reward id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return reward, nil
}

func (s *Service) points(ctx context.Context, op string, userID uuid.UUID) (*models.PointsResponse, error) {
	earned, err := s.rewardRepo.EarnedPoints(ctx, userID)
	if err != nil {
		s.logger.Error("%s: failed to get earned points for user=%s: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - earned points: %w", ErrInternal, op, err)
	}

	spent, err := s.rewardRepo.SpentPoints(ctx, userID)
	if err != nil {
		s.logger.Error("%s: failed to get spent points for user=%s: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - spent points: %w", ErrInternal, op, err)
	}

	return &models.PointsResponse{
		UserID:    userID,
		Earned:    earned,
		Spent:     spent,
		Available: earned - spent,
	}, nil
}

// checkAdminAccess проверяет, что пользователь администратор
func (s *Service) checkAdminAccess(ctx context.Context, userID uuid.UUID) error {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("checkAdminAccess: profile user=%s not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAdminAccess: failed to get profile user=%s: %v", userID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get profile: %w", ErrInternal, err)
	}

	if !profile.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user=%s is not an admin", userID)
		return ErrAccessDenied
	}

	return nil
}

// validateReward валидирует редактируемые поля награды
func validateReward(r *domain.Reward) error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > domain.MaxRewardTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxRewardTitleLength)
	}
	if r.Points <= 0 || r.Points > domain.MaxRewardPoints {
		return fmt.Errorf("%w: points must be between 1 and %d", ErrInvalidInput, domain.MaxRewardPoints)
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if r.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	r.Title = title
	return nil
}
