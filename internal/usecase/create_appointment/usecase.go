package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notification"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	profileRepo     ProfileRepository
	notifier        Notifier
	publisher       EventPublisher
	txManager       TransactionManager
	policy          scheduling.Policy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	profileRepo ProfileRepository,
	notifier Notifier,
	publisher EventPublisher,
	txManager TransactionManager,
	policy scheduling.Policy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		profileRepo:     profileRepo,
		notifier:        notifier,
		publisher:       publisher,
		txManager:       txManager,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Чтение записей мастера, проверка правил и вставка выполняются в одной сериализуемой транзакции.
// Письмо и событие отправляются после коммита, их ошибки не отменяют запись.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: user=%s, service=%s, staff=%s, date=%s, time=%s",
		req.UserID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	now := uc.timeProvider.Now()

	// 1. Получаем услугу и мастера
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}

	// 2. Интервал записи в часовом поясе салона
	start := req.StartTime.On(req.Date, uc.policy.Loc())
	end := start.Add(service.DurationOrDefault(uc.policy.DefaultDuration))

	var result *domain.Appointment

	// 3. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		from, to := uc.policy.DayBounds(start)
		appointments, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			From:      &from,
			To:        &to,
			StaffID:   &staff.ID,
			ForUpdate: true,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get staff appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		if err := uc.policy.ValidateBooking(req.UserID, start, end, now, appointments); err != nil {
			return err
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			UserID:    req.UserID,
			ServiceID: service.ID,
			StaffID:   staff.ID,
			StartTime: start,
			EndTime:   end,
			Status:    domain.StatusConfirmed,
			Price:     service.Price,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return scheduling.ErrSlotUnavailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	// Повторы исчерпаны: слот забрала параллельная транзакция
	if txmanager.IsSerializationFailure(err) {
		err = scheduling.ErrSlotUnavailable
	}

	if err != nil {
		if vErr, ok := scheduling.AsValidationError(err); ok {
			uc.metrics.IncBookingRejection(string(vErr.Kind))
			uc.logger.Warn("CreateAppointment: rejected user=%s, staff=%s, start=%s: %s",
				req.UserID, staff.ID, start.Format(domain.DateFormat+" "+domain.TimeFormat), vErr.Kind)
			return nil, err
		}
		if !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
		}
		return nil, err
	}

	result.ServiceName = service.Name
	result.ServiceDuration = service.Duration
	result.StaffName = staff.Name
	result.StaffRole = staff.Role

	uc.metrics.IncAppointmentsCreated()
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	uc.sendConfirmation(ctx, result)
	uc.publishCreated(ctx, result)

	return toResponse(result), nil
}

func (uc *UseCase) sendConfirmation(ctx context.Context, appt *domain.Appointment) {
	profile, err := uc.profileRepo.GetByID(ctx, appt.UserID)
	if err != nil {
		uc.metrics.IncNotificationFailures()
		uc.logger.Error("CreateAppointment: failed to get profile user=%s for confirmation: %v", appt.UserID, err)
		return
	}

	if err := uc.notifier.SendBookingConfirmation(ctx, profile.Email, appt); err != nil {
		if errors.Is(err, notification.ErrDisabled) {
			return
		}
		uc.metrics.IncNotificationFailures()
		uc.logger.Error("CreateAppointment: failed to send confirmation for appointment id=%s: %v", appt.ID, err)
	}
}

func (uc *UseCase) publishCreated(ctx context.Context, appt *domain.Appointment) {
	if err := uc.publisher.Publish(ctx, events.TypeAppointmentCreated, appt); err != nil {
		uc.metrics.IncEventPublishFailures()
		uc.logger.Error("CreateAppointment: failed to publish event for appointment id=%s: %v", appt.ID, err)
	}
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:          a.ID,
		UserID:      a.UserID,
		ServiceID:   a.ServiceID,
		StaffID:     a.StaffID,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Status:      string(a.Status),
		Price:       a.Price,
		ServiceName: a.ServiceName,
		StaffName:   a.StaffName,
		CreatedAt:   a.CreatedAt,
	}
}
