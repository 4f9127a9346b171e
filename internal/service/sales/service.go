package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	profileRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/internal/service/sales/models"
)

// Service отчёты о продажах по завершённым записям
type Service struct {
	appointmentRepo AppointmentRepository
	profileRepo     ProfileRepository
	policy          scheduling.Policy
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса продаж
func NewService(
	appointmentRepo AppointmentRepository,
	profileRepo ProfileRepository,
	policy scheduling.Policy,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		profileRepo:     profileRepo,
		policy:          policy,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// Report строит отчёт о продажах за период
// Доступно только администратору
func (s *Service) Report(ctx context.Context, req *models.ReportRequest) (*models.ReportResponse, error) {
	s.logger.Info("Report: building sales report period=%s by user=%s", req.Period, req.UserID)

	period := domain.SalesPeriod(req.Period)
	if !period.IsValid() {
		s.logger.Warn("Report: invalid period=%s", req.Period)
		return nil, ErrInvalidPeriod
	}

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	loc := s.policy.Loc()
	now := s.timeProvider.Now().In(loc)
	current, previous := Windows(period, now, loc)
	chartWindow, layout := ChartWindow(period, now)

	// Одна выборка покрывает предыдущий период и окно графика
	from := previous.From
	if chartWindow.From.Before(from) {
		from = chartWindow.From
	}
	completed := domain.StatusCompleted
	list, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		From:   &from,
		To:     &current.To,
		Status: &completed,
	})
	if err != nil {
		s.logger.Error("Report: repository error: %v", err)
		return nil, fmt.Errorf("%w: Report - repository error: %w", ErrInternal, err)
	}

	var cur, prev, chart []domain.Appointment
	for _, a := range list {
		if current.Contains(a.StartTime) {
			cur = append(cur, a)
		}
		if previous.Contains(a.StartTime) {
			prev = append(prev, a)
		}
		if chartWindow.Contains(a.StartTime) {
			chart = append(chart, a)
		}
	}

	resp := &models.ReportResponse{
		Period:      string(period),
		From:        current.From,
		To:          current.To,
		Overview:    Overview(cur, prev),
		Chart:       Chart(chart, layout, loc),
		ByService:   ByService(cur),
		ByStaff:     ByStaff(cur),
		GeneratedAt: now,
	}

	s.logger.Info("Report: period=%s sales=%d appointments=%d",
		period, resp.Overview.TotalSales, resp.Overview.TotalAppointments)
	return resp, nil
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
