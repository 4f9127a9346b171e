package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// GenerateTimeSlots строит слоты на день с шагом SlotInterval от начала рабочего дня
//
// Генерация останавливается на первом слоте, который закончился бы после закрытия.
// Слот занят, если пересекается с любой активной записью (см. overlaps).
// Если staff задан, учитываются только записи этого мастера, иначе все записи дня.
// service == nil означает длительность DefaultDuration.
func (p Policy) GenerateTimeSlots(
	date time.Time,
	appointments []domain.Appointment,
	service *domain.Service,
	staff *domain.Staff,
) []domain.TimeSlot {
	open, closing := p.BusinessHours(date)
	duration := service.DurationOrDefault(p.DefaultDuration)

	slots := make([]domain.TimeSlot, 0)
	if p.SlotInterval <= 0 {
		return slots
	}

	for current := open; current.Before(closing); current = current.Add(p.SlotInterval) {
		slotEnd := current.Add(duration)
		if slotEnd.After(closing) {
			break
		}

		slots = append(slots, domain.TimeSlot{
			Time:      types.NewTimeString(current),
			StartTime: current,
			EndTime:   slotEnd,
			Available: !isBlocked(current, slotEnd, appointments, staff),
		})
	}

	return slots
}

func isBlocked(start, end time.Time, appointments []domain.Appointment, staff *domain.Staff) bool {
	for i := range appointments {
		appt := &appointments[i]
		if !appt.IsActive() {
			continue
		}
		if staff != nil && appt.StaffID != staff.ID {
			continue
		}
		if overlaps(start, end, appt.StartTime, appt.EndTime) {
			return true
		}
	}
	return false
}
