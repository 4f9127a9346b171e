package notification

import "errors"

var (
	// ErrDisabled возвращается, когда адрес сервиса уведомлений не настроен
	ErrDisabled = errors.New("notification client: disabled")

	// ErrInvalidRequest возвращается при некорректных данных письма
	ErrInvalidRequest = errors.New("notification client: invalid request")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notification client: internal error")

	// ErrInvalidResponse возвращается при неуспешном ответе сервиса
	ErrInvalidResponse = errors.New("notification client: invalid response")
)
