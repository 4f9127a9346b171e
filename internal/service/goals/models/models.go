package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreateGoalRequest запрос на создание цели
type CreateGoalRequest struct {
	UserID      uuid.UUID `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Deadline    time.Time `json:"deadline"`
}

// UpdateProgressRequest запись нового прогресса цели
type UpdateProgressRequest struct {
	UserID   uuid.UUID `json:"-"`
	GoalID   int64     `json:"-"`
	Progress int       `json:"progress"`
	Note     *string   `json:"note,omitempty"`
}

// Response модели

// GoalResponse ответ с данными цели
type GoalResponse struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Deadline    time.Time `json:"deadline"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GoalListResponse ответ со списком целей
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ProgressResponse запись истории прогресса
type ProgressResponse struct {
	ID         int64     `json:"id"`
	GoalID     int64     `json:"goalId"`
	Progress   int       `json:"progress"`
	Note       *string   `json:"note,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// ProgressListResponse история прогресса цели
type ProgressListResponse struct {
	Progress []ProgressResponse `json:"progress"`
}

// UpdateProgressResponse результат записи прогресса
// PointsAwarded больше нуля, только если этим обновлением цель достигла 100%
type UpdateProgressResponse struct {
	Goal          GoalResponse     `json:"goal"`
	Entry         ProgressResponse `json:"entry"`
	PointsAwarded int              `json:"pointsAwarded"`
}

// StatisticsResponse сводка по целям пользователя
type StatisticsResponse struct {
	TotalGoals      int     `json:"totalGoals"`
	CompletedGoals  int     `json:"completedGoals"`
	AverageProgress float64 `json:"averageProgress"`
	TotalPoints     int     `json:"totalPoints"`
	ActiveGoals     int     `json:"activeGoals"`
}

// Методы конвертации

// FromDomainGoal конвертирует domain модель в DTO
func FromDomainGoal(g *domain.Goal) *GoalResponse {
	if g == nil {
		return nil
	}

	return &GoalResponse{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		Deadline:    g.Deadline,
		Progress:    g.Progress,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// FromDomainGoalList конвертирует список целей в DTO
func FromDomainGoalList(list []domain.Goal) *GoalListResponse {
	resp := &GoalListResponse{Goals: make([]GoalResponse, 0, len(list))}
	for i := range list {
		resp.Goals = append(resp.Goals, *FromDomainGoal(&list[i]))
	}
	return resp
}

// FromDomainProgress конвертирует запись истории в DTO
func FromDomainProgress(p *domain.GoalProgress) *ProgressResponse {
	if p == nil {
		return nil
	}

	return &ProgressResponse{
		ID:         p.ID,
		GoalID:     p.GoalID,
		Progress:   p.Progress,
		Note:       p.Note,
		RecordedAt: p.RecordedAt,
	}
}

// FromDomainProgressList конвертирует историю прогресса в DTO
func FromDomainProgressList(list []domain.GoalProgress) *ProgressListResponse {
	resp := &ProgressListResponse{Progress: make([]ProgressResponse, 0, len(list))}
	for i := range list {
		resp.Progress = append(resp.Progress, *FromDomainProgress(&list[i]))
	}
	return resp
}

// ToDomainGoal конвертирует CreateGoalRequest в domain модель
func (r *CreateGoalRequest) ToDomainGoal() *domain.Goal {
	return &domain.Goal{
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Deadline:    r.Deadline,
	}
}
