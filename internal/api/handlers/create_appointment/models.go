package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID uuid.UUID `json:"serviceId"`
	StaffID   uuid.UUID `json:"staffId"`
	Date      string    `json:"date"`      // "2026-10-21"
	StartTime string    `json:"startTime"` // "10:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	ServiceID   uuid.UUID `json:"serviceId"`
	StaffID     uuid.UUID `json:"staffId"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	StartsAt    string    `json:"startsAt"`
	EndsAt      string    `json:"endsAt"`
	Status      string    `json:"status"`
	Price       int64     `json:"price"`
	ServiceName string    `json:"serviceName"`
	StaffName   string    `json:"staffName"`
	CreatedAt   string    `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID uuid.UUID) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createAppointment.Request{
		UserID:    userID,
		ServiceID: r.ServiceID,
		StaffID:   r.StaffID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Дата и время отдаются в часовом поясе салона
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *AppointmentResponse {
	start := resp.StartTime.In(loc)
	end := resp.EndTime.In(loc)

	return &AppointmentResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		ServiceID:   resp.ServiceID,
		StaffID:     resp.StaffID,
		Date:        start.Format(domain.DateFormat),
		StartTime:   start.Format(domain.TimeFormat),
		EndTime:     end.Format(domain.TimeFormat),
		StartsAt:    start.Format(time.RFC3339),
		EndsAt:      end.Format(time.RFC3339),
		Status:      resp.Status,
		Price:       resp.Price,
		ServiceName: resp.ServiceName,
		StaffName:   resp.StaffName,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
