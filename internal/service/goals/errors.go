package goals

import "errors"

var (
	// ErrGoalNotFound возвращается, когда цель не найдена
	ErrGoalNotFound = errors.New("goals: goal not found")

	// ErrAccessDenied возвращается при обращении к чужой цели
	ErrAccessDenied = errors.New("goals: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("goals: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("goals: internal error")
)
