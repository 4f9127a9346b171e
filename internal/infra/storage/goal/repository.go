package goal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var (
	goalColumns     = []string{"id", "user_id", "title", "description", "category", "deadline", "progress", "created_at", "updated_at"}
	progressColumns = []string{"id", "goal_id", "user_id", "progress", "note", "recorded_at"}
)

// Repository цели клиентов, история прогресса и начисления баллов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает цель с нулевым прогрессом
func (r *Repository) Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("goals").
		Columns("user_id", "title", "description", "category", "deadline", "progress").
		Values(g.UserID, g.Title, g.Description, g.Category, g.Deadline, g.Progress).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return g, nil
}

// ListByUser возвращает цели пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		var g domain.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Deadline, &g.Progress, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %w", ErrScanRow, err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %w", ErrScanRow, err)
	}

	return goals, nil
}

// GetByID получает цель
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Goal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var g domain.Goal
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Deadline, &g.Progress, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan goal: %w", ErrScanRow, err)
	}

	return &g, nil
}

// UpdateProgress сохраняет текущий прогресс цели
func (r *Repository) UpdateProgress(ctx context.Context, id int64, progress int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("goals").
		Set("progress", progress).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProgress - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateProgress - execute: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProgress - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// AddProgress добавляет запись в историю прогресса
func (r *Repository) AddProgress(ctx context.Context, p *domain.GoalProgress) (*domain.GoalProgress, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("goal_progress").
		Columns("goal_id", "user_id", "progress", "note").
		Values(p.GoalID, p.UserID, p.Progress, p.Note).
		Suffix("RETURNING id, recorded_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddProgress - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.RecordedAt); err != nil {
		return nil, fmt.Errorf("%w: AddProgress - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// ListProgress возвращает историю прогресса цели в хронологическом порядке
func (r *Repository) ListProgress(ctx context.Context, goalID int64) ([]domain.GoalProgress, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(progressColumns...).
		From("goal_progress").
		Where(squirrel.Eq{"goal_id": goalID}).
		OrderBy("recorded_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListProgress - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProgress - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	history := make([]domain.GoalProgress, 0)
	for rows.Next() {
		var p domain.GoalProgress
		if err := rows.Scan(&p.ID, &p.GoalID, &p.UserID, &p.Progress, &p.Note, &p.RecordedAt); err != nil {
			return nil, fmt.Errorf("%w: ListProgress - scan row: %w", ErrScanRow, err)
		}
		history = append(history, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProgress - rows error: %w", ErrScanRow, err)
	}

	return history, nil
}

// CreateAward начисляет баллы
// Повторное начисление за ту же цель возвращает ErrAlreadyAwarded.
// Конфликт по goal_id не выполняет INSERT, поэтому транзакция остаётся рабочей
func (r *Repository) CreateAward(ctx context.Context, a *domain.PointAward) (*domain.PointAward, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("point_awards").
		Columns("user_id", "goal_id", "points", "reason").
		Values(a.UserID, a.GoalID, a.Points, a.Reason).
		Suffix("ON CONFLICT (goal_id) WHERE goal_id IS NOT NULL DO NOTHING RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAward - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlreadyAwarded
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyAwarded
		}
		return nil, fmt.Errorf("%w: CreateAward - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// GoalPoints сумма баллов пользователя, начисленных за цели
func (r *Repository) GoalPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(points), 0)").
		From("point_awards").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"goal_id": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: GoalPoints - build select query: %w", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: GoalPoints - scan sum: %w", ErrScanRow, err)
	}

	return total, nil
}

// ListAllAwards возвращает все начисления салона в хронологическом порядке
// Для начислений за цель Category берётся из цели
func (r *Repository) ListAllAwards(ctx context.Context) ([]domain.PointAward, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id", "a.user_id", "a.goal_id", "a.points", "a.reason", "COALESCE(g.category, '')", "a.created_at",
	).
		From("point_awards a").
		LeftJoin("goals g ON g.id = a.goal_id").
		OrderBy("a.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAllAwards - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAllAwards - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	awards := make([]domain.PointAward, 0)
	for rows.Next() {
		var a domain.PointAward
		if err := rows.Scan(&a.ID, &a.UserID, &a.GoalID, &a.Points, &a.Reason, &a.Category, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListAllAwards - scan row: %w", ErrScanRow, err)
		}
		awards = append(awards, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAllAwards - rows error: %w", ErrScanRow, err)
	}

	return awards, nil
}
