package sales

import "errors"

var (
	// ErrInvalidPeriod возвращается при неизвестном отчётном периоде
	ErrInvalidPeriod = errors.New("sales: invalid period")

	// ErrAccessDenied возвращается, когда у пользователя нет прав администратора
	ErrAccessDenied = errors.New("sales: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sales: internal error")
)
