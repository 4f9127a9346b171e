package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service is a salon menu item. Reference data, read-only for booking.
type Service struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Duration    int   // minutes, positive
	Price       int64 // yen, non-negative
	Category    string
	CreatedAt   time.Time
}

// DurationOrDefault returns the service duration, falling back to def when unset
func (s *Service) DurationOrDefault(def time.Duration) time.Duration {
	if s == nil || s.Duration <= 0 {
		return def
	}
	return time.Duration(s.Duration) * time.Minute
}

// Staff is a salon staff member who performs services
type Staff struct {
	ID        uuid.UUID
	Name      string
	Role      string
	Bio       *string
	ImageURL  *string
	CreatedAt time.Time
}
