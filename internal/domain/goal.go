package domain

import (
	"time"

	"github.com/google/uuid"
)

// GoalCompletionPoints is awarded once when a goal reaches full progress
const GoalCompletionPoints = 100

// MaxGoalProgress marks a completed goal
const MaxGoalProgress = 100

// Goal is a personal target a customer tracks towards
type Goal struct {
	ID          int64
	UserID      uuid.UUID
	Title       string
	Description string
	Category    string
	Deadline    time.Time
	Progress    int // 0..100
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCompleted returns true if the goal reached 100%
func (g *Goal) IsCompleted() bool {
	return g.Progress >= MaxGoalProgress
}

// GoalProgress is one entry of the goal progress history
type GoalProgress struct {
	ID         int64
	GoalID     int64
	UserID     uuid.UUID
	Progress   int
	Note       *string
	RecordedAt time.Time
}

// PointAward credits points to a user
// GoalID and Category are set for awards earned by completing a goal
type PointAward struct {
	ID        int64
	UserID    uuid.UUID
	GoalID    *int64
	Points    int
	Reason    string
	Category  string
	CreatedAt time.Time
}
