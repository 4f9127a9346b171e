package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID    uuid.UUID        // ID клиента из заголовка X-User-ID
	ServiceID uuid.UUID        // ID услуги
	StaffID   uuid.UUID        // ID мастера
	Date      time.Time        // Календарный день записи (время суток игнорируется)
	StartTime types.TimeString // Время начала в часовом поясе салона, например "10:00"
}

// Response модель ответа с созданной записью
type Response struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ServiceID uuid.UUID
	StaffID   uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Price     int64

	ServiceName string
	StaffName   string

	CreatedAt time.Time
}
