package domain

// SalesPeriod отчётный период для продаж
type SalesPeriod string

const (
	PeriodDaily   SalesPeriod = "daily"
	PeriodWeekly  SalesPeriod = "weekly"
	PeriodMonthly SalesPeriod = "monthly"
)

// IsValid returns true for a known period
func (p SalesPeriod) IsValid() bool {
	return p == PeriodDaily || p == PeriodWeekly || p == PeriodMonthly
}
