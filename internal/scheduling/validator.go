package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ValidateBooking проверяет новую запись [start, end) по правилам салона
// Правила проверяются по порядку, возвращается первое нарушение:
//  1. начало не в прошлом
//  2. час начала внутри рабочего времени
//  3. нет пересечения с активными записями выборки
//  4. активных записей в тот же день меньше MaxAppointmentsPerDay
//
// Лимит считается по всей переданной выборке, userID на него не влияет.
// Область лимита определяет вызывающий код тем, какие записи он передал.
func (p Policy) ValidateBooking(
	userID uuid.UUID,
	start, end, now time.Time,
	appointments []domain.Appointment,
) error {
	if start.Before(now) {
		return ErrPastDate
	}

	loc := p.Loc()
	localStart := start.In(loc)
	if hour := localStart.Hour(); hour < p.OpenHour || hour >= p.CloseHour {
		return &ValidationError{
			Kind:    KindBusinessHours,
			Message: fmt.Sprintf("営業時間外です（%02d:00-%02d:00）", p.OpenHour, p.CloseHour),
		}
	}

	for i := range appointments {
		appt := &appointments[i]
		if appt.IsActive() && overlaps(start, end, appt.StartTime, appt.EndTime) {
			return ErrSlotUnavailable
		}
	}

	sameDay := 0
	y, m, d := localStart.Date()
	for i := range appointments {
		appt := &appointments[i]
		if !appt.IsActive() {
			continue
		}
		ay, am, ad := appt.StartTime.In(loc).Date()
		if ay == y && am == m && ad == d {
			sameDay++
		}
	}
	if sameDay >= p.MaxAppointmentsPerDay {
		return ErrDailyLimitReached
	}

	return nil
}

// CanCancel возвращает true, если до начала записи осталось не меньше CancellationDeadline
// Учитываются только полные часы
func (p Policy) CanCancel(start, now time.Time) bool {
	hoursLeft := int(start.Sub(now) / time.Hour)
	return hoursLeft >= int(p.CancellationDeadline/time.Hour)
}
