package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses список всех допустимых статусов записи
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// Ограничения для наград
const (
	MaxRewardTitleLength = 200
	MaxRewardPoints      = 100000
)

// Ограничения для целей
const (
	MaxGoalTitleLength = 200
	MaxGoalNoteLength  = 1000
)

// MonthFormat ключ месяца в аналитике
const MonthFormat = "2006-01"

// UncategorizedAward категория начислений, не привязанных к цели
const UncategorizedAward = "other"
