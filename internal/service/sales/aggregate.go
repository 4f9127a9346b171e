package sales

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/sales/models"
)

type totals struct {
	sales        int64
	appointments int
	customers    int
}

func (t totals) averageOrderValue() float64 {
	if t.appointments == 0 {
		return 0
	}
	return float64(t.sales) / float64(t.appointments)
}

func summarize(list []domain.Appointment) totals {
	customers := make(map[uuid.UUID]struct{}, len(list))
	var t totals
	for i := range list {
		t.sales += list[i].Price
		customers[list[i].UserID] = struct{}{}
	}
	t.appointments = len(list)
	t.customers = len(customers)
	return t
}

// Growth рост в процентах, округлённый до целого; 0 если предыдущее значение 0
func Growth(current, previous float64) int {
	if previous == 0 {
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

// Overview считает показатели текущего периода относительно предыдущего
func Overview(current, previous []domain.Appointment) models.OverviewResponse {
	cur, prev := summarize(current), summarize(previous)
	return models.OverviewResponse{
		TotalSales:         cur.sales,
		SalesGrowth:        Growth(float64(cur.sales), float64(prev.sales)),
		TotalAppointments:  cur.appointments,
		AppointmentsGrowth: Growth(float64(cur.appointments), float64(prev.appointments)),
		UniqueCustomers:    cur.customers,
		CustomersGrowth:    Growth(float64(cur.customers), float64(prev.customers)),
		AverageOrderValue:  int64(math.Round(cur.averageOrderValue())),
		AOVGrowth:          Growth(cur.averageOrderValue(), prev.averageOrderValue()),
	}
}

// Chart суммирует выручку по подписи layout в часовом поясе loc
// Точки отсортированы по строке подписи
func Chart(list []domain.Appointment, layout string, loc *time.Location) []models.ChartPoint {
	byLabel := make(map[string]int64)
	for i := range list {
		byLabel[list[i].StartTime.In(loc).Format(layout)] += list[i].Price
	}

	points := make([]models.ChartPoint, 0, len(byLabel))
	for label, sales := range byLabel {
		points = append(points, models.ChartPoint{Date: label, Sales: sales})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// ByService группирует выручку по услугам, по убыванию выручки
func ByService(list []domain.Appointment) []models.BreakdownEntry {
	return breakdown(list, func(a *domain.Appointment) (uuid.UUID, string) {
		return a.ServiceID, a.ServiceName
	})
}

// ByStaff группирует выручку по мастерам, по убыванию выручки
func ByStaff(list []domain.Appointment) []models.BreakdownEntry {
	return breakdown(list, func(a *domain.Appointment) (uuid.UUID, string) {
		return a.StaffID, a.StaffName
	})
}

func breakdown(list []domain.Appointment, key func(a *domain.Appointment) (uuid.UUID, string)) []models.BreakdownEntry {
	index := make(map[uuid.UUID]int)
	entries := make([]models.BreakdownEntry, 0)

	for i := range list {
		id, name := key(&list[i])
		pos, ok := index[id]
		if !ok {
			pos = len(entries)
			index[id] = pos
			entries = append(entries, models.BreakdownEntry{ID: id, Name: name})
		}
		entries[pos].Sales += list[i].Price
		entries[pos].Count++
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Sales > entries[j].Sales })
	return entries
}
