package models

// Месяцы в отчётах имеют вид "2026-04" (domain.MonthFormat)

// CategoryCount количество событий в категории
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryPoints сумма баллов в категории
type CategoryPoints struct {
	Category string `json:"category"`
	Points   int    `json:"points"`
}

// SeasonalResponse сезонность обменов наград за последние 12 месяцев
type SeasonalResponse struct {
	MonthlyData        []MonthlyExchanges         `json:"monthlyData"`
	CategoryTrends     []CategoryTrend            `json:"categoryTrends"`
	SeasonalPopularity map[string][]CategoryCount `json:"seasonalPopularity"` // spring, summer, autumn, winter
}

type MonthlyExchanges struct {
	Month      string         `json:"month"`
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
}

// CategoryTrend обмены категории по календарным месяцам
// Counts[0] январь; Peak и Low номера месяцев 1..12
type CategoryTrend struct {
	Category string `json:"category"`
	Counts   []int  `json:"counts"`
	Peak     int    `json:"peak"`
	Low      int    `json:"low"`
}

// PointsResponse начисление и расход баллов за последние 12 месяцев
type PointsResponse struct {
	MonthlyData      []MonthlyPoints  `json:"monthlyData"`
	EarnedByCategory []CategoryPoints `json:"earnedByCategory"`
	UsedByCategory   []CategoryPoints `json:"usedByCategory"`
	TotalEarned      int              `json:"totalEarned"`
	TotalUsed        int              `json:"totalUsed"`

	// Распределение по шестичасовым интервалам суток: 0-5, 6-11, 12-17, 18-23
	AchievementPatterns []int `json:"achievementPatterns"`
	ExchangePatterns    []int `json:"exchangePatterns"`
}

type MonthlyPoints struct {
	Month   string `json:"month"`
	Earned  int    `json:"earned"`
	Used    int    `json:"used"`
	Balance int    `json:"balance"`
}

// CohortResponse когорты пользователей по месяцу первого начисления
type CohortResponse struct {
	Cohorts []Cohort      `json:"cohorts"`
	Summary CohortSummary `json:"summary"`
}

type Cohort struct {
	Cohort          string           `json:"cohort"`
	TotalUsers      int              `json:"totalUsers"`
	MonthlyActivity []CohortActivity `json:"monthlyActivity"`
}

// CohortActivity активность когорты через Month месяцев после старта
type CohortActivity struct {
	Month         int     `json:"month"`
	ActiveUsers   int     `json:"activeUsers"`
	Achievements  int     `json:"achievements"`
	EarnedPoints  int     `json:"earnedPoints"`
	Exchanges     int     `json:"exchanges"`
	UsedPoints    int     `json:"usedPoints"`
	RetentionRate float64 `json:"retentionRate"`
}

type CohortSummary struct {
	TotalCohorts         int             `json:"totalCohorts"`
	AverageRetention     float64         `json:"averageRetention"`
	BestRetentionCohort  CohortRetention `json:"bestRetentionCohort"`
	AverageLifetimeValue float64         `json:"averageLifetimeValue"`
}

type CohortRetention struct {
	Cohort        string  `json:"cohort"`
	RetentionRate float64 `json:"retentionRate"`
}

// SegmentResponse сегменты пользователей программы лояльности
type SegmentResponse struct {
	CurrentSegments []SegmentStats `json:"currentSegments"`
	SegmentTrends   []SegmentTrend `json:"segmentTrends"`
}

type SegmentStats struct {
	Segment             string  `json:"segment"`
	UserCount           int     `json:"userCount"`
	AveragePoints       float64 `json:"averagePoints"`
	AverageAchievements float64 `json:"averageAchievements"`
	AverageExchanges    float64 `json:"averageExchanges"`
	CategoryDiversity   float64 `json:"categoryDiversity"`
}

// SegmentTrend число пользователей в сегментах на конец месяца
type SegmentTrend struct {
	Month    string `json:"month"`
	VIP      int    `json:"vip"`
	Active   int    `json:"active"`
	Moderate int    `json:"moderate"`
	Risk     int    `json:"risk"`
	Inactive int    `json:"inactive"`
}
