package reward

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

const foreignKeyViolation = "23503"

var rewardColumns = []string{"id", "title", "description", "points", "category", "stock", "created_at"}

// Repository награды, обмены и баланс баллов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAvailable возвращает награды в наличии, от дешёвых к дорогим
func (r *Repository) ListAvailable(ctx context.Context) ([]domain.Reward, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rewardColumns...).
		From("rewards").
		Where(squirrel.Gt{"stock": 0}).
		OrderBy("points ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rewards := make([]domain.Reward, 0)
	for rows.Next() {
		var rw domain.Reward
		if err := rows.Scan(&rw.ID, &rw.Title, &rw.Description, &rw.Points, &rw.Category, &rw.Stock, &rw.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan row: %w", ErrScanRow, err)
		}
		rewards = append(rewards, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows error: %w", ErrScanRow, err)
	}

	return rewards, nil
}

// GetByID получает награду
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reward, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rewardColumns...).
		From("rewards").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var rw domain.Reward
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&rw.ID, &rw.Title, &rw.Description, &rw.Points, &rw.Category, &rw.Stock, &rw.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRewardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reward: %w", ErrScanRow, err)
	}

	return &rw, nil
}

// Create создает награду
func (r *Repository) Create(ctx context.Context, rw *domain.Reward) (*domain.Reward, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rewards").
		Columns("title", "description", "points", "category", "stock").
		Values(rw.Title, rw.Description, rw.Points, rw.Category, rw.Stock).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rw.ID, &rw.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return rw, nil
}

// Update перезаписывает редактируемые поля награды
func (r *Repository) Update(ctx context.Context, rw *domain.Reward) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rewards").
		Set("title", rw.Title).
		Set("description", rw.Description).
		Set("points", rw.Points).
		Set("category", rw.Category).
		Set("stock", rw.Stock).
		Where(squirrel.Eq{"id": rw.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// Delete удаляет награду
// Если на награду уже есть обмены, возвращается ErrRewardInUse
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("rewards").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

// DecrementStock уменьшает остаток на единицу, если он положительный
func (r *Repository) DecrementStock(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rewards").
		Set("stock", squirrel.Expr("stock - 1")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"stock": 0}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DecrementStock - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "DecrementStock", query, args)
}

// CreateExchange записывает обмен награды пользователем
func (r *Repository) CreateExchange(ctx context.Context, ex *domain.RewardExchange) (*domain.RewardExchange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reward_exchanges").
		Columns("user_id", "reward_id", "points").
		Values(ex.UserID, ex.RewardID, ex.Points).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateExchange - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&ex.ID, &ex.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateExchange - execute insert: %w", ErrExecQuery, err)
	}

	return ex, nil
}

// ListExchanges возвращает историю обменов пользователя, новые первыми
func (r *Repository) ListExchanges(ctx context.Context, userID uuid.UUID) ([]domain.RewardExchange, error) {
	return r.listExchanges(ctx, "ListExchanges", squirrel.Eq{"e.user_id": userID})
}

// ListAllExchanges возвращает все обмены салона, новые первыми
func (r *Repository) ListAllExchanges(ctx context.Context) ([]domain.RewardExchange, error) {
	return r.listExchanges(ctx, "ListAllExchanges", nil)
}

func (r *Repository) listExchanges(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.RewardExchange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"e.id", "e.user_id", "e.reward_id", "e.points", "e.created_at",
		"r.id", "r.title", "r.description", "r.points", "r.category", "r.stock", "r.created_at",
	).
		From("reward_exchanges e").
		Join("rewards r ON r.id = e.reward_id").
		OrderBy("e.created_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	exchanges := make([]domain.RewardExchange, 0)
	for rows.Next() {
		var ex domain.RewardExchange
		var rw domain.Reward
		err := rows.Scan(
			&ex.ID, &ex.UserID, &ex.RewardID, &ex.Points, &ex.CreatedAt,
			&rw.ID, &rw.Title, &rw.Description, &rw.Points, &rw.Category, &rw.Stock, &rw.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		ex.Reward = &rw
		exchanges = append(exchanges, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return exchanges, nil
}

// EarnedPoints сумма начисленных пользователю баллов
func (r *Repository) EarnedPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.sumPoints(ctx, "EarnedPoints", "point_awards", userID)
}

// SpentPoints сумма баллов, потраченных на обмены
func (r *Repository) SpentPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.sumPoints(ctx, "SpentPoints", "reward_exchanges", userID)
}

func (r *Repository) sumPoints(ctx context.Context, op, table string, userID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(points), 0)").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %s - scan sum: %w", ErrScanRow, op, err)
	}

	return total, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return ErrRewardInUse
		}
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrRewardNotFound
	}

	return nil
}
