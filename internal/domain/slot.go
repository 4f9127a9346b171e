package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// TimeSlot is a derived, non-persisted candidate start time within one day
type TimeSlot struct {
	Time      types.TimeString // HH:MM in the salon time zone
	StartTime time.Time
	EndTime   time.Time
	Available bool
}
