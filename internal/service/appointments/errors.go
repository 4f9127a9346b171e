package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrCannotCancel возвращается, когда статус записи не позволяет отмену
	ErrCannotCancel = errors.New("appointments: appointment cannot be cancelled")

	// ErrCancellationDeadline возвращается, когда до начала записи осталось меньше допустимого
	ErrCancellationDeadline = errors.New("appointments: cancellation deadline passed")

	// ErrSlotTaken возвращается, когда восстановленная запись конфликтует с другой активной
	ErrSlotTaken = errors.New("appointments: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
