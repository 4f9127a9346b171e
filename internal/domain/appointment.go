package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a salon appointment.
// Invariant: EndTime = StartTime + service duration, EndTime > StartTime.
type Appointment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ServiceID uuid.UUID
	StaffID   uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    AppointmentStatus
	Price     int64 // yen, copied from the service at booking time

	// Joined display data
	ServiceName     string
	ServiceDuration int
	StaffName       string
	StaffRole       string

	CreatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the status allows cancellation
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCompleted returns true if the customer has been served
func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	From             *time.Time         // start_time >= From (опционально)
	To               *time.Time         // start_time < To (опционально)
	StaffID          *uuid.UUID         // Фильтр по мастеру (опционально)
	UserID           *uuid.UUID         // Фильтр по клиенту (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
	NewestFirst      bool               // Сортировка по start_time DESC вместо ASC
	ForUpdate        bool               // Блокировать строки (только внутри транзакции)
}

// ParseAppointmentStatus конвертирует строку в AppointmentStatus с валидацией
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	for _, valid := range AllStatuses {
		if AppointmentStatus(s) == valid {
			return valid, true
		}
	}
	return "", false
}
