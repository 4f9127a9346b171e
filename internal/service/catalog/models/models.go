package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ServiceResponse услуга из меню салона
type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Duration    int       `json:"duration"` // минуты
	Price       int64     `json:"price"`    // иены
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// StaffResponse мастер салона
type StaffResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       *string   `json:"bio,omitempty"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StaffListResponse ответ со списком мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.Duration,
		Price:       s.Price,
		Category:    s.Category,
		CreatedAt:   s.CreatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(list []domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(list))}
	for i := range list {
		resp.Services = append(resp.Services, *FromDomainService(&list[i]))
	}
	return resp
}

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	if s == nil {
		return nil
	}
	return &StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		Role:      s.Role,
		Bio:       s.Bio,
		ImageURL:  s.ImageURL,
		CreatedAt: s.CreatedAt,
	}
}

// FromDomainStaffList конвертирует список мастеров в DTO
func FromDomainStaffList(list []domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{Staff: make([]StaffResponse, 0, len(list))}
	for i := range list {
		resp.Staff = append(resp.Staff, *FromDomainStaff(&list[i]))
	}
	return resp
}
