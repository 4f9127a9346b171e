package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	Date      time.Time  // Календарный день (время суток игнорируется)
	ServiceID *uuid.UUID // Услуга определяет длительность (опционально)
	StaffID   *uuid.UUID // Мастер, по записям которого считается занятость (опционально)
}

// Response модель ответа со слотами дня
type Response struct {
	Date            time.Time
	ServiceID       *uuid.UUID
	StaffID         *uuid.UUID
	DurationMinutes int
	Slots           []domain.TimeSlot
}
