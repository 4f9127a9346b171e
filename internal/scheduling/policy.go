// Package scheduling содержит правила расписания салона:
// генерацию слотов на день (GenerateTimeSlots) и проверку новой записи (ValidateBooking).
// Пакет не обращается к хранилищу и часам, все входные данные передаются явно.
package scheduling

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultOpenHour              = 10
	DefaultCloseHour             = 19
	DefaultSlotInterval          = 30 * time.Minute
	DefaultServiceDuration       = 60 * time.Minute
	DefaultMaxAppointmentsPerDay = 1
	DefaultCancellationDeadline  = 24 * time.Hour
)

// ErrInvalidPolicy возвращается при некорректных параметрах расписания
var ErrInvalidPolicy = errors.New("scheduling: invalid policy")

// Policy параметры расписания салона
type Policy struct {
	OpenHour              int           // Первый час, в который можно начать запись
	CloseHour             int           // Час закрытия, запись должна закончиться не позже
	SlotInterval          time.Duration // Шаг между началами слотов
	DefaultDuration       time.Duration // Длительность, если услуга не выбрана
	MaxAppointmentsPerDay int           // Лимит записей в день в переданной выборке
	CancellationDeadline  time.Duration // Минимальное время до начала для отмены
	Location              *time.Location
}

// DefaultPolicy возвращает расписание 10:00-19:00 с шагом 30 минут
func DefaultPolicy() Policy {
	return Policy{
		OpenHour:              DefaultOpenHour,
		CloseHour:             DefaultCloseHour,
		SlotInterval:          DefaultSlotInterval,
		DefaultDuration:       DefaultServiceDuration,
		MaxAppointmentsPerDay: DefaultMaxAppointmentsPerDay,
		CancellationDeadline:  DefaultCancellationDeadline,
		Location:              time.Local,
	}
}

// Validate проверяет согласованность параметров
func (p Policy) Validate() error {
	if p.OpenHour < 0 || p.CloseHour > 24 || p.OpenHour >= p.CloseHour {
		return fmt.Errorf("%w: business hours %d-%d", ErrInvalidPolicy, p.OpenHour, p.CloseHour)
	}
	if p.SlotInterval <= 0 {
		return fmt.Errorf("%w: slot interval must be positive", ErrInvalidPolicy)
	}
	if p.DefaultDuration <= 0 {
		return fmt.Errorf("%w: default duration must be positive", ErrInvalidPolicy)
	}
	if p.MaxAppointmentsPerDay < 1 {
		return fmt.Errorf("%w: max appointments per day must be at least 1", ErrInvalidPolicy)
	}
	if p.CancellationDeadline < 0 {
		return fmt.Errorf("%w: cancellation deadline must not be negative", ErrInvalidPolicy)
	}
	return nil
}

// Loc часовой пояс салона, time.Local если не задан
func (p Policy) Loc() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// BusinessHours возвращает начало и конец рабочего дня для календарной даты date
// Календарный день берётся из date как есть (год, месяц, число), время суток игнорируется
func (p Policy) BusinessHours(date time.Time) (open, close time.Time) {
	y, m, d := date.Date()
	loc := p.Loc()
	return time.Date(y, m, d, p.OpenHour, 0, 0, 0, loc), time.Date(y, m, d, p.CloseHour, 0, 0, 0, loc)
}

// DayBounds возвращает [00:00, 00:00 следующего дня) для календарной даты date
func (p Policy) DayBounds(date time.Time) (from, to time.Time) {
	y, m, d := date.Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, p.Loc())
	return from, from.AddDate(0, 0, 1)
}

// overlaps проверяет пересечение замкнутых интервалов [aStart, aEnd] и [bStart, bEnd]
// Касание границами считается пересечением
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
