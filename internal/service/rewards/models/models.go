package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreateRewardRequest запрос администратора на создание награды
type CreateRewardRequest struct {
	UserID      uuid.UUID `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
}

// UpdateRewardRequest запрос на обновление награды
// Все поля опциональны - обновляются только переданные значения
type UpdateRewardRequest struct {
	UserID      uuid.UUID `json:"-"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Points      *int      `json:"points,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
}

// Response модели

// RewardResponse ответ с данными награды
type RewardResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RewardListResponse ответ со списком наград
type RewardListResponse struct {
	Rewards []RewardResponse `json:"rewards"`
}

// PointsResponse баланс баллов пользователя
type PointsResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Earned    int       `json:"earned"`
	Spent     int       `json:"spent"`
	Available int       `json:"available"`
}

// ExchangeResponse запись об обмене награды
type ExchangeResponse struct {
	ID        int64           `json:"id"`
	RewardID  int64           `json:"rewardId"`
	Points    int             `json:"points"`
	CreatedAt time.Time       `json:"createdAt"`
	Reward    *RewardResponse `json:"reward,omitempty"`
}

// ExchangeListResponse история обменов
type ExchangeListResponse struct {
	Exchanges []ExchangeResponse `json:"exchanges"`
}

// AnalyticsResponse сводка по обменам наград для администратора
type AnalyticsResponse struct {
	TotalExchanges       int                  `json:"totalExchanges"`
	TotalPointsUsed      int                  `json:"totalPointsUsed"`
	ActiveUsers          int                  `json:"activeUsers"` // уникальные пользователи за 30 дней
	UsageHistory         []DailyUsage         `json:"usageHistory"`
	CategoryDistribution []CategoryCount      `json:"categoryDistribution"`
	PopularRewards       []PopularRewardEntry `json:"popularRewards"`
}

// DailyUsage число обменов за день
type DailyUsage struct {
	Date      string `json:"date"` // "2026-10-21"
	Exchanges int    `json:"exchanges"`
}

// CategoryCount число обменов по категории
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PopularRewardEntry строка рейтинга популярных наград
type PopularRewardEntry struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Points        int    `json:"points"`
	ExchangeCount int    `json:"exchangeCount"`
}

// Методы конвертации

// FromDomainReward конвертирует domain модель в DTO
func FromDomainReward(r *domain.Reward) *RewardResponse {
	if r == nil {
		return nil
	}

	return &RewardResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Points:      r.Points,
		Category:    r.Category,
		Stock:       r.Stock,
		CreatedAt:   r.CreatedAt,
	}
}

// FromDomainRewardList конвертирует список наград в DTO
func FromDomainRewardList(list []domain.Reward) *RewardListResponse {
	resp := &RewardListResponse{Rewards: make([]RewardResponse, 0, len(list))}
	for i := range list {
		resp.Rewards = append(resp.Rewards, *FromDomainReward(&list[i]))
	}
	return resp
}

// FromDomainExchange конвертирует обмен в DTO
func FromDomainExchange(ex *domain.RewardExchange) *ExchangeResponse {
	if ex == nil {
		return nil
	}

	return &ExchangeResponse{
		ID:        ex.ID,
		RewardID:  ex.RewardID,
		Points:    ex.Points,
		CreatedAt: ex.CreatedAt,
		Reward:    FromDomainReward(ex.Reward),
	}
}

// FromDomainExchangeList конвертирует историю обменов в DTO
func FromDomainExchangeList(list []domain.RewardExchange) *ExchangeListResponse {
	resp := &ExchangeListResponse{Exchanges: make([]ExchangeResponse, 0, len(list))}
	for i := range list {
		resp.Exchanges = append(resp.Exchanges, *FromDomainExchange(&list[i]))
	}
	return resp
}

// ToDomainReward конвертирует CreateRewardRequest в domain модель
func (r *CreateRewardRequest) ToDomainReward() *domain.Reward {
	return &domain.Reward{
		Title:       r.Title,
		Description: r.Description,
		Points:      r.Points,
		Category:    r.Category,
		Stock:       r.Stock,
	}
}

// ApplyToReward применяет обновления к существующей награде
// Обновляются только непустые (not nil) поля из request
func (r *UpdateRewardRequest) ApplyToReward(rw *domain.Reward) {
	if r.Title != nil {
		rw.Title = *r.Title
	}
	if r.Description != nil {
		rw.Description = *r.Description
	}
	if r.Points != nil {
		rw.Points = *r.Points
	}
	if r.Category != nil {
		rw.Category = *r.Category
	}
	if r.Stock != nil {
		rw.Stock = *r.Stock
	}
}
