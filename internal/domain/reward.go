package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reward is an item customers can exchange for points
type Reward struct {
	ID          int64
	Title       string
	Description string
	Points      int
	Category    string
	Stock       int
	CreatedAt   time.Time
}

// InStock returns true if at least one item is left
func (r *Reward) InStock() bool {
	return r.Stock > 0
}

// RewardExchange records a reward redeemed by a user
type RewardExchange struct {
	ID        int64
	UserID    uuid.UUID
	RewardID  int64
	Points    int // reward cost at exchange time
	CreatedAt time.Time

	Reward *Reward
}
