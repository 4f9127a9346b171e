package rewards

import "errors"

var (
	// ErrRewardNotFound возвращается, когда награда не найдена
	ErrRewardNotFound = errors.New("rewards: reward not found")

	// ErrOutOfStock возвращается, когда награда закончилась
	ErrOutOfStock = errors.New("rewards: reward out of stock")

	// ErrInsufficientPoints возвращается, когда у пользователя не хватает баллов
	ErrInsufficientPoints = errors.New("rewards: insufficient points")

	// ErrRewardInUse возвращается при удалении награды, на которую уже есть обмены
	ErrRewardInUse = errors.New("rewards: reward has exchanges")

	// ErrAccessDenied возвращается, когда у пользователя нет прав администратора
	ErrAccessDenied = errors.New("rewards: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rewards: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rewards: internal error")
)
