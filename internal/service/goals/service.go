package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	goalRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/goal"
	"github.com/m04kA/SMC-SalonService/internal/service/goals/models"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

const goalAwardReason = "goal_completed"

// Service сервис целей клиентов
// Достижение цели (100%) начисляет баллы, которые затем тратятся на награды
type Service struct {
	goalRepo  GoalRepository
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса целей
func NewService(
	goalRepo GoalRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		goalRepo:  goalRepo,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreateGoal создает цель пользователя с нулевым прогрессом
func (s *Service) CreateGoal(ctx context.Context, req *models.CreateGoalRequest) (*models.GoalResponse, error) {
	s.logger.Info("CreateGoal: creating goal title=%q for user=%s", req.Title, req.UserID)

	goal := req.ToDomainGoal()
	if err := validateGoal(goal); err != nil {
		s.logger.Warn("CreateGoal: validation failed: %v", err)
		return nil, err
	}

	created, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		s.logger.Error("CreateGoal: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: CreateGoal - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateGoal: successfully created goal id=%d", created.ID)
	return models.FromDomainGoal(created), nil
}

// ListGoals возвращает цели пользователя, новые первыми
func (s *Service) ListGoals(ctx context.Context, userID uuid.UUID) (*models.GoalListResponse, error) {
	s.logger.Info("ListGoals: fetching goals for user=%s", userID)

	list, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListGoals: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListGoals - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListGoals: fetched %d goals for user=%s", len(list), userID)
	return models.FromDomainGoalList(list), nil
}

// UpdateProgress записывает новый прогресс цели
// Цель блокируется на время транзакции; при первом достижении 100%
// пользователю начисляется domain.GoalCompletionPoints баллов
func (s *Service) UpdateProgress(ctx context.Context, req *models.UpdateProgressRequest) (*models.UpdateProgressResponse, error) {
	s.logger.Info("UpdateProgress: user=%s goal id=%d progress=%d", req.UserID, req.GoalID, req.Progress)

	if err := validateProgress(req); err != nil {
		s.logger.Warn("UpdateProgress: validation failed: %v", err)
		return nil, err
	}

	var resp *models.UpdateProgressResponse
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем цель с блокировкой и проверяем владельца
		goal, err := s.getOwnedGoal(txCtx, "UpdateProgress", req.GoalID, req.UserID)
		if err != nil {
			return err
		}
		wasCompleted := goal.IsCompleted()

		// 2. Добавляем запись в историю
		entry, err := s.goalRepo.AddProgress(txCtx, &domain.GoalProgress{
			GoalID:   goal.ID,
			UserID:   req.UserID,
			Progress: req.Progress,
			Note:     req.Note,
		})
		if err != nil {
			s.logger.Error("UpdateProgress: failed to add progress for goal id=%d: %v", goal.ID, err)
			return fmt.Errorf("%w: UpdateProgress - add progress: %w", ErrInternal, err)
		}

		// 3. Обновляем текущий прогресс цели
		if err := s.goalRepo.UpdateProgress(txCtx, goal.ID, req.Progress); err != nil {
			if errors.Is(err, goalRepo.ErrGoalNotFound) {
				return ErrGoalNotFound
			}
			s.logger.Error("UpdateProgress: failed to update goal id=%d: %v", goal.ID, err)
			return fmt.Errorf("%w: UpdateProgress - update goal: %w", ErrInternal, err)
		}
		goal.Progress = req.Progress

		// 4. Начисляем баллы за достижение
		awarded := 0
		if goal.IsCompleted() && !wasCompleted {
			awarded, err = s.award(txCtx, goal)
			if err != nil {
				return err
			}
		}

		resp = &models.UpdateProgressResponse{
			Goal:          *models.FromDomainGoal(goal),
			Entry:         *models.FromDomainProgress(entry),
			PointsAwarded: awarded,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			s.logger.Error("UpdateProgress: transaction failed for goal id=%d: %v", req.GoalID, err)
			return nil, fmt.Errorf("%w: UpdateProgress - transaction: %w", ErrInternal, err)
		}
		return nil, err
	}

	if resp.PointsAwarded > 0 {
		s.metrics.IncGoalsCompleted()
	}
	s.logger.Info("UpdateProgress: goal id=%d now at %d%%, awarded %d points",
		req.GoalID, req.Progress, resp.PointsAwarded)
	return resp, nil
}

// ListProgress возвращает историю прогресса цели в хронологическом порядке
// Доступно только владельцу цели
func (s *Service) ListProgress(ctx context.Context, goalID int64, userID uuid.UUID) (*models.ProgressListResponse, error) {
	s.logger.Info("ListProgress: fetching progress of goal id=%d for user=%s", goalID, userID)

	if _, err := s.getOwnedGoal(ctx, "ListProgress", goalID, userID); err != nil {
		return nil, err
	}

	history, err := s.goalRepo.ListProgress(ctx, goalID)
	if err != nil {
		s.logger.Error("ListProgress: repository error for goal id=%d: %v", goalID, err)
		return nil, fmt.Errorf("%w: ListProgress - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListProgress: fetched %d entries for goal id=%d", len(history), goalID)
	return models.FromDomainProgressList(history), nil
}

// Statistics считает сводку по целям пользователя
// Цели и баллы читаются в одной транзакции только для чтения
func (s *Service) Statistics(ctx context.Context, userID uuid.UUID) (*models.StatisticsResponse, error) {
	s.logger.Info("Statistics: building goal statistics for user=%s", userID)

	var (
		list   []domain.Goal
		points int
	)
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if list, err = s.goalRepo.ListByUser(txCtx, userID); err != nil {
			return fmt.Errorf("%w: Statistics - list goals: %w", ErrInternal, err)
		}
		if points, err = s.goalRepo.GoalPoints(txCtx, userID); err != nil {
			return fmt.Errorf("%w: Statistics - goal points: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Statistics: failed for user=%s: %v", userID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: Statistics - transaction: %w", ErrInternal, err)
		}
		return nil, err
	}

	resp := buildStatistics(list, points)
	s.logger.Info("Statistics: user=%s has %d goals, %d completed", userID, resp.TotalGoals, resp.CompletedGoals)
	return resp, nil
}

// Вспомогательные методы

// getOwnedGoal получает цель и проверяет, что она принадлежит userID
func (s *Service) getOwnedGoal(ctx context.Context, op string, goalID int64, userID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, goalRepo.ErrGoalNotFound) {
			s.logger.Warn("%s: goal id=%d not found", op, goalID)
			return nil, ErrGoalNotFound
		}
		s.logger.Error("%s: repository error for goal id=%d: %v", op, goalID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	if goal.UserID != userID {
		s.logger.Warn("%s: user=%s tried to access goal id=%d of user=%s", op, userID, goalID, goal.UserID)
		return nil, ErrAccessDenied
	}

	return goal, nil
}

// award начисляет баллы за цель; повторное начисление не ошибка, а ноль баллов
func (s *Service) award(ctx context.Context, goal *domain.Goal) (int, error) {
	goalID := goal.ID
	_, err := s.goalRepo.CreateAward(ctx, &domain.PointAward{
		UserID: goal.UserID,
		GoalID: &goalID,
		Points: domain.GoalCompletionPoints,
		Reason: goalAwardReason,
	})
	if err != nil {
		if errors.Is(err, goalRepo.ErrAlreadyAwarded) {
			s.logger.Info("award: goal id=%d was already awarded, skipping", goal.ID)
			return 0, nil
		}
		s.logger.Error("award: failed to award goal id=%d: %v", goal.ID, err)
		return 0, fmt.Errorf("%w: award - create award: %w", ErrInternal, err)
	}
	return domain.GoalCompletionPoints, nil
}

func buildStatistics(list []domain.Goal, points int) *models.StatisticsResponse {
	resp := &models.StatisticsResponse{
		TotalGoals:  len(list),
		TotalPoints: points,
	}

	sum := 0
	for i := range list {
		sum += list[i].Progress
		if list[i].IsCompleted() {
			resp.CompletedGoals++
		}
	}
	if resp.TotalGoals > 0 {
		resp.AverageProgress = float64(sum) / float64(resp.TotalGoals)
	}
	resp.ActiveGoals = resp.TotalGoals - resp.CompletedGoals

	return resp
}

// validateGoal валидирует и нормализует поля новой цели
func validateGoal(g *domain.Goal) error {
	if g.UserID == uuid.Nil {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	title := strings.TrimSpace(g.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > domain.MaxGoalTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxGoalTitleLength)
	}
	category := strings.TrimSpace(g.Category)
	if category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if g.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalidInput)
	}

	g.Title = title
	g.Category = category
	g.Progress = 0
	return nil
}

func validateProgress(req *models.UpdateProgressRequest) error {
	if req.GoalID <= 0 {
		return fmt.Errorf("%w: goal id must be positive", ErrInvalidInput)
	}
	if req.Progress < 0 || req.Progress > domain.MaxGoalProgress {
		return fmt.Errorf("%w: progress must be between 0 and %d", ErrInvalidInput, domain.MaxGoalProgress)
	}
	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxGoalNoteLength {
		return fmt.Errorf("%w: note must be at most %d characters", ErrInvalidInput, domain.MaxGoalNoteLength)
	}
	return nil
}
