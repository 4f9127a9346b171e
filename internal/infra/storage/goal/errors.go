package goal

import "errors"

var (
	// ErrGoalNotFound возвращается, когда цель не найдена
	ErrGoalNotFound = errors.New("goal.repository: goal not found")

	// ErrAlreadyAwarded возвращается при повторном начислении баллов за цель
	ErrAlreadyAwarded = errors.New("goal.repository: goal already awarded")

	ErrBuildQuery = errors.New("goal.repository: failed to build query")
	ErrExecQuery  = errors.New("goal.repository: failed to execute query")
	ErrScanRow    = errors.New("goal.repository: failed to scan row")
)
