package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// ErrInvalidStatus возвращается при некорректном статусе
var ErrInvalidStatus = errors.New("invalid appointment status")

// ListUserAppointmentsRequest запрос на получение записей пользователя
type ListUserAppointmentsRequest struct {
	UserID uuid.UUID
	Status *string
}

// UpdateStatusRequest запрос администратора на смену статуса
type UpdateStatusRequest struct {
	UserID uuid.UUID `json:"-"`
	Status string    `json:"status"`
}

// ListDayRequest запрос администратора на записи дня
type ListDayRequest struct {
	UserID           uuid.UUID
	Date             time.Time
	StaffID          *uuid.UUID
	IncludeCancelled bool
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ServiceID uuid.UUID `json:"serviceId"`
	StaffID   uuid.UUID `json:"staffId"`
	Date      string    `json:"date"`      // "2026-10-21"
	StartTime string    `json:"startTime"` // "10:00"
	EndTime   string    `json:"endTime"`   // "11:00"
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Status    string    `json:"status"`
	Price     int64     `json:"price"`

	ServiceName     string `json:"serviceName"`
	ServiceDuration int    `json:"serviceDuration"`
	StaffName       string `json:"staffName"`
	StaffRole       string `json:"staffRole"`

	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
// Дата и время показываются в часовом поясе loc
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	start := a.StartTime.In(loc)
	end := a.EndTime.In(loc)

	return &AppointmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		ServiceID:       a.ServiceID,
		StaffID:         a.StaffID,
		Date:            start.Format(domain.DateFormat),
		StartTime:       types.NewTimeString(start).String(),
		EndTime:         types.NewTimeString(end).String(),
		StartsAt:        start,
		EndsAt:          end,
		Status:          string(a.Status),
		Price:           a.Price,
		ServiceName:     a.ServiceName,
		ServiceDuration: a.ServiceDuration,
		StaffName:       a.StaffName,
		StaffRole:       a.StaffRole,
		CreatedAt:       a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []domain.Appointment, loc *time.Location) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}
	for i := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(&list[i], loc))
	}
	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s, ok := domain.ParseAppointmentStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
