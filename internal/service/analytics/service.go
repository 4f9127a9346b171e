package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	profileRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-SalonService/internal/service/analytics/models"
)

// Service аналитика программы лояльности для администратора
// Начисления и обмены читаются одним снимком и агрегируются в памяти
type Service struct {
	awardRepo    AwardRepository
	exchangeRepo ExchangeRepository
	profileRepo  ProfileRepository
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аналитики
// loc задаёт часовой пояс, в котором считаются месяцы и часы суток
func NewService(
	awardRepo AwardRepository,
	exchangeRepo ExchangeRepository,
	profileRepo ProfileRepository,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		awardRepo:    awardRepo,
		exchangeRepo: exchangeRepo,
		profileRepo:  profileRepo,
		txManager:    txManager,
		location:     loc,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Seasonal сезонность обменов по категориям наград
func (s *Service) Seasonal(ctx context.Context, userID uuid.UUID) (*models.SeasonalResponse, error) {
	s.logger.Info("Seasonal: building seasonal analytics by user=%s", userID)

	_, spent, err := s.load(ctx, "Seasonal", userID)
	if err != nil {
		return nil, err
	}

	resp := buildSeasonal(spent, s.now())
	s.logger.Info("Seasonal: %d categories", len(resp.CategoryTrends))
	return resp, nil
}

// Points начисление и расход баллов по месяцам и категориям
func (s *Service) Points(ctx context.Context, userID uuid.UUID) (*models.PointsResponse, error) {
	s.logger.Info("Points: building point analytics by user=%s", userID)

	earned, spent, err := s.load(ctx, "Points", userID)
	if err != nil {
		return nil, err
	}

	resp := buildPoints(earned, spent, s.now())
	s.logger.Info("Points: earned=%d, used=%d", resp.TotalEarned, resp.TotalUsed)
	return resp, nil
}

// Cohorts когортный анализ удержания
func (s *Service) Cohorts(ctx context.Context, userID uuid.UUID) (*models.CohortResponse, error) {
	s.logger.Info("Cohorts: building cohort analytics by user=%s", userID)

	earned, spent, err := s.load(ctx, "Cohorts", userID)
	if err != nil {
		return nil, err
	}

	resp := buildCohorts(earned, spent)
	s.logger.Info("Cohorts: %d cohorts", resp.Summary.TotalCohorts)
	return resp, nil
}

// Segments сегментация пользователей и её динамика
func (s *Service) Segments(ctx context.Context, userID uuid.UUID) (*models.SegmentResponse, error) {
	s.logger.Info("Segments: building segment analytics by user=%s", userID)

	earned, spent, err := s.load(ctx, "Segments", userID)
	if err != nil {
		return nil, err
	}

	resp := buildSegments(earned, spent, s.now())
	s.logger.Info("Segments: built %d segments", len(resp.CurrentSegments))
	return resp, nil
}

// Вспомогательные методы

func (s *Service) now() time.Time {
	return s.timeProvider.Now().In(s.location)
}

// load проверяет права и читает начисления и обмены одним снимком
func (s *Service) load(ctx context.Context, op string, userID uuid.UUID) ([]activity, []activity, error) {
	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return nil, nil, err
	}

	var (
		awards    []domain.PointAward
		exchanges []domain.RewardExchange
	)
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if awards, err = s.awardRepo.ListAllAwards(txCtx); err != nil {
			return fmt.Errorf("list awards: %w", err)
		}
		if exchanges, err = s.exchangeRepo.ListAllExchanges(txCtx); err != nil {
			return fmt.Errorf("list exchanges: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("%s: failed to load activity: %v", op, err)
		return nil, nil, fmt.Errorf("%w: %s - %w", ErrInternal, op, err)
	}

	return earnedActivity(awards, s.location), spentActivity(exchanges, s.location), nil
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
