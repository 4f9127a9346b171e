package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// Service сервис справочных данных салона (меню и мастера)
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListServices возвращает меню салона по имени
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services")

	list, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services", len(list))
	return models.FromDomainServiceList(list), nil
}

// GetService возвращает услугу по ID
func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*models.ServiceResponse, error) {
	s.logger.Info("GetService: fetching service id=%s", id)

	svc, err := s.catalogRepo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// ListStaff возвращает мастеров по имени
func (s *Service) ListStaff(ctx context.Context) (*models.StaffListResponse, error) {
	s.logger.Info("ListStaff: fetching staff")

	list, err := s.catalogRepo.ListStaff(ctx)
	if err != nil {
		s.logger.Error("ListStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListStaff: fetched %d staff members", len(list))
	return models.FromDomainStaffList(list), nil
}

// GetStaff возвращает мастера по ID
func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*models.StaffResponse, error) {
	s.logger.Info("GetStaff: fetching staff id=%s", id)

	staff, err := s.catalogRepo.GetStaff(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			s.logger.Warn("GetStaff: staff id=%s not found", id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("GetStaff: repository error for staff id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetStaff - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainStaff(staff), nil
}
