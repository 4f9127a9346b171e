package sales

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Window полуоткрытый интервал [From, To)
type Window struct {
	From time.Time
	To   time.Time
}

// Contains проверяет, что t попадает в окно
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// Windows возвращает текущий период [начало, now) и предыдущий период
// daily: сегодня и вчера; weekly: с понедельника и предыдущие 7 дней;
// monthly: с первого числа и весь предыдущий месяц
func Windows(period domain.SalesPeriod, now time.Time, loc *time.Location) (current, previous Window) {
	now = now.In(loc)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	var start, prevStart time.Time
	switch period {
	case domain.PeriodWeekly:
		offset := (int(today.Weekday()) + 6) % 7 // понедельник = 0
		start = today.AddDate(0, 0, -offset)
		prevStart = start.AddDate(0, 0, -7)
	case domain.PeriodMonthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		prevStart = start.AddDate(0, -1, 0)
	default:
		start = today
		prevStart = today.AddDate(0, 0, -1)
	}

	return Window{From: start, To: now}, Window{From: prevStart, To: start}
}

// ChartWindow возвращает интервал графика и формат подписи точки
func ChartWindow(period domain.SalesPeriod, now time.Time) (Window, string) {
	switch period {
	case domain.PeriodWeekly:
		return Window{From: now.AddDate(0, 0, -28), To: now}, "1/2"
	case domain.PeriodMonthly:
		return Window{From: now.AddDate(0, 0, -180), To: now}, "2006/1"
	default:
		return Window{From: now.AddDate(0, 0, -7), To: now}, "1/2"
	}
}
