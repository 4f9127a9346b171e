package scheduling

import (
	"errors"
	"fmt"
)

// Kind машинно-читаемый код нарушения правил бронирования
type Kind string

const (
	KindPastDate          Kind = "PAST_DATE"
	KindBusinessHours     Kind = "BUSINESS_HOURS"
	KindSlotUnavailable   Kind = "TIME_SLOT_UNAVAILABLE"
	KindDailyLimitReached Kind = "DAILY_LIMIT_REACHED"
)

// ValidationError отказ в бронировании
// Message показывается пользователю без изменений
type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scheduling: %s: %s", e.Kind, e.Message)
}

// Is сравнивает ошибки по Kind, чтобы errors.Is работал с обёрнутыми копиями
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

var (
	ErrPastDate = &ValidationError{
		Kind:    KindPastDate,
		Message: "過去の日付は選択できません",
	}
	ErrBusinessHours = &ValidationError{
		Kind:    KindBusinessHours,
		Message: "営業時間外です（10:00-19:00）",
	}
	ErrSlotUnavailable = &ValidationError{
		Kind:    KindSlotUnavailable,
		Message: "選択された時間枠は既に予約されています",
	}
	ErrDailyLimitReached = &ValidationError{
		Kind:    KindDailyLimitReached,
		Message: "1日の予約上限に達しています",
	}
)

// AsValidationError достаёт ValidationError из цепочки ошибок
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
