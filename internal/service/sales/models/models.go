package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportRequest запрос отчёта о продажах
type ReportRequest struct {
	UserID uuid.UUID
	Period string // daily, weekly, monthly
}

// OverviewResponse ключевые показатели периода и рост к предыдущему, в процентах
type OverviewResponse struct {
	TotalSales         int64 `json:"totalSales"`
	SalesGrowth        int   `json:"salesGrowth"`
	TotalAppointments  int   `json:"totalAppointments"`
	AppointmentsGrowth int   `json:"appointmentsGrowth"`
	UniqueCustomers    int   `json:"uniqueCustomers"`
	CustomersGrowth    int   `json:"customersGrowth"`
	AverageOrderValue  int64 `json:"averageOrderValue"`
	AOVGrowth          int   `json:"aovGrowth"`
}

// ChartPoint выручка за одну точку графика
type ChartPoint struct {
	Date  string `json:"date"` // "10/21" или "2026/10"
	Sales int64  `json:"sales"`
}

// BreakdownEntry выручка по услуге или мастеру
type BreakdownEntry struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Sales int64     `json:"sales"`
	Count int       `json:"count"`
}

// ReportResponse отчёт о продажах за период
type ReportResponse struct {
	Period      string           `json:"period"`
	From        time.Time        `json:"from"`
	To          time.Time        `json:"to"`
	Overview    OverviewResponse `json:"overview"`
	Chart       []ChartPoint     `json:"chart"`
	ByService   []BreakdownEntry `json:"byService"`
	ByStaff     []BreakdownEntry `json:"byStaff"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
