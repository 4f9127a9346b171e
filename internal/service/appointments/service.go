package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	profileRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// Service сервис для работы с записями клиентов
type Service struct {
	appointmentRepo AppointmentRepository
	profileRepo     ProfileRepository
	publisher       EventPublisher
	txManager       TransactionManager
	policy          scheduling.Policy
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	profileRepo ProfileRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	policy scheduling.Policy,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		profileRepo:     profileRepo,
		publisher:       publisher,
		txManager:       txManager,
		policy:          policy,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видит её владелец или администратор
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if appt.UserID != userID {
		if err := s.checkAdminAccess(ctx, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, id)
			return nil, err
		}
	}

	return models.FromDomainAppointment(appt, s.policy.Loc()), nil
}

// ListUserAppointments получает записи пользователя, новые первыми
// Опционально фильтрует по статусу
func (s *Service) ListUserAppointments(ctx context.Context, req *models.ListUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListUserAppointments: fetching appointments for user=%s, status=%v", req.UserID, req.Status)

	filter := domain.AppointmentsFilter{
		UserID:           &req.UserID,
		IncludeCancelled: true,
		NewestFirst:      true,
	}

	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListUserAppointments: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListUserAppointments: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListUserAppointments - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListUserAppointments: fetched %d appointments for user=%s", len(list), req.UserID)
	return models.FromDomainAppointmentList(list, s.policy.Loc()), nil
}

// Cancel отменяет запись клиентом
// Отменить можно только свою запись в статусе pending/confirmed
// и не позже чем за CancellationDeadline до начала
func (s *Service) Cancel(ctx context.Context, id, userID uuid.UUID) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", id, userID)

	var cancelled *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.getAppointment(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if appt.UserID != userID {
			s.logger.Warn("Cancel: user=%s is not the owner of appointment id=%s", userID, id)
			return ErrAccessDenied
		}

		if !appt.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appt.Status)
			return ErrCannotCancel
		}

		if !s.policy.CanCancel(appt.StartTime, s.timeProvider.Now()) {
			s.logger.Warn("Cancel: appointment id=%s starts at %s, deadline passed", id, appt.StartTime)
			return ErrCancellationDeadline
		}

		if err := s.updateStatus(txCtx, "Cancel", id, domain.StatusCancelled); err != nil {
			return err
		}

		appt.Status = domain.StatusCancelled
		cancelled = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			s.logger.Error("Cancel: transaction failed for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - transaction: %w", ErrInternal, err)
		}
		return err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	s.publish(ctx, events.TypeAppointmentCancelled, cancelled)
	return nil
}

// UpdateStatus меняет статус записи
// Доступно только администратору
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s by user=%s", id, req.Status, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appt, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if err := s.updateStatus(ctx, "UpdateStatus", id, newStatus); err != nil {
		return nil, err
	}
	appt.Status = newStatus

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", id, newStatus)
	if newStatus == domain.StatusCancelled {
		s.publish(ctx, events.TypeAppointmentCancelled, appt)
	} else {
		s.publish(ctx, events.TypeAppointmentStatusChanged, appt)
	}

	return models.FromDomainAppointment(appt, s.policy.Loc()), nil
}

// ListDay получает записи салона на день по возрастанию времени
// Доступно только администратору
func (s *Service) ListDay(ctx context.Context, req *models.ListDayRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListDay: fetching appointments for date=%s, staff=%v by user=%s",
		req.Date.Format(domain.DateFormat), req.StaffID, req.UserID)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	from, to := s.policy.DayBounds(req.Date)
	list, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		From:             &from,
		To:               &to,
		StaffID:          req.StaffID,
		IncludeCancelled: req.IncludeCancelled,
	})
	if err != nil {
		s.logger.Error("ListDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListDay - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListDay: fetched %d appointments for date=%s", len(list), req.Date.Format(domain.DateFormat))
	return models.FromDomainAppointmentList(list, s.policy.Loc()), nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return appt, nil
}

func (s *Service) updateStatus(ctx context.Context, op string, id uuid.UUID, status domain.AppointmentStatus) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("%s: appointment id=%s not found during update", op, id)
			return ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			s.logger.Warn("%s: appointment id=%s conflicts with another active appointment", op, id)
			return ErrSlotTaken
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return nil
}

// checkAdminAccess проверяет, что пользователь администратор
func (s *Service) checkAdminAccess(ctx context.Context, userID uuid.UUID) error {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("checkAdminAccess: profile user=%s not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAdminAccess: failed to get profile user=%s: %v", userID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get profile: %w", ErrInternal, err)
	}

	if !profile.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user=%s is not an admin", userID)
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, appt *domain.Appointment) {
	if err := s.publisher.Publish(ctx, eventType, appt); err != nil {
		s.logger.Error("publish: %s for appointment id=%s failed: %v", eventType, appt.ID, err)
	}
}
