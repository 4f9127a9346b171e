package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
)

// UseCase use case для получения слотов на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	policy          scheduling.Policy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	policy scheduling.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		policy:          policy,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Date.IsZero() {
		uc.logger.Warn("GetAvailableSlots: validation failed: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailableSlots: date=%s, service=%v, staff=%v",
		req.Date.Format(domain.DateFormat), req.ServiceID, req.StaffID)

	// 1. Услуга и мастер (если заданы)
	var service *domain.Service
	if req.ServiceID != nil {
		s, err := uc.catalogRepo.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%s not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		service = s
	}

	var staff *domain.Staff
	if req.StaffID != nil {
		s, err := uc.catalogRepo.GetStaff(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: staff id=%s not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%s: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
		}
		staff = s
	}

	// 2. Активные записи дня (только выбранного мастера, если он задан)
	from, to := uc.policy.DayBounds(req.Date)
	filter := domain.AppointmentsFilter{From: &from, To: &to}
	if staff != nil {
		filter.StaffID = &staff.ID
	}

	appointments, err := uc.appointmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	// 3. Генерируем слоты
	slots := uc.policy.GenerateTimeSlots(req.Date, appointments, service, staff)
	duration := service.DurationOrDefault(uc.policy.DefaultDuration)

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s (%d appointments)",
		len(slots), req.Date.Format(domain.DateFormat), len(appointments))

	return &Response{
		Date:            from,
		ServiceID:       req.ServiceID,
		StaffID:         req.StaffID,
		DurationMinutes: int(duration / time.Minute),
		Slots:           slots,
	}, nil
}
