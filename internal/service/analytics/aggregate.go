package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/analytics/models"
)

const (
	reportMonths       = 12
	segmentTrendMonths = 6
	seasonTopLimit     = 3
	hoursPerDayPart    = 6
	dayParts           = 24 / hoursPerDayPart
)

// Сегменты в порядке проверки
const (
	SegmentVIP      = "vip"
	SegmentActive   = "active"
	SegmentModerate = "moderate"
	SegmentRisk     = "risk"
	SegmentInactive = "inactive"
)

var segmentOrder = []string{SegmentVIP, SegmentActive, SegmentModerate, SegmentRisk, SegmentInactive}

// Пороги сегментации
const (
	vipMinPoints         = 10000
	vipMinCategories     = 3
	recentDays           = 30
	moderateDays         = 90
	riskDays             = 180
	activeMinFrequency   = 2.0 // начислений в месяц
	moderateMinFrequency = 1.0
	daysPerMonth         = 30
)

var seasons = []struct {
	name   string
	months []time.Month
}{
	{name: "spring", months: []time.Month{time.March, time.April, time.May}},
	{name: "summer", months: []time.Month{time.June, time.July, time.August}},
	{name: "autumn", months: []time.Month{time.September, time.October, time.November}},
	{name: "winter", months: []time.Month{time.December, time.January, time.February}},
}

// activity начисление или трата баллов одним пользователем
type activity struct {
	user     uuid.UUID
	points   int
	category string
	at       time.Time
}

func earnedActivity(awards []domain.PointAward, loc *time.Location) []activity {
	out := make([]activity, 0, len(awards))
	for i := range awards {
		a := &awards[i]
		category := a.Category
		if category == "" {
			category = domain.UncategorizedAward
		}
		out = append(out, activity{user: a.UserID, points: a.Points, category: category, at: a.CreatedAt.In(loc)})
	}
	return out
}

func spentActivity(exchanges []domain.RewardExchange, loc *time.Location) []activity {
	out := make([]activity, 0, len(exchanges))
	for i := range exchanges {
		ex := &exchanges[i]
		category := domain.UncategorizedAward
		if ex.Reward != nil && ex.Reward.Category != "" {
			category = ex.Reward.Category
		}
		out = append(out, activity{user: ex.UserID, points: ex.Points, category: category, at: ex.CreatedAt.In(loc)})
	}
	return out
}

// lastMonths возвращает начала n последних месяцев, заканчивая месяцем now, старые первыми
func lastMonths(now time.Time, n int) []time.Time {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := make([]time.Time, n)
	for i := range months {
		months[i] = current.AddDate(0, i-(n-1), 0)
	}
	return months
}

func monthKey(t time.Time) string {
	return t.Format(domain.MonthFormat)
}

func monthDiff(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// buildSeasonal считает сезонность обменов за последние 12 месяцев
func buildSeasonal(spent []activity, now time.Time) *models.SeasonalResponse {
	months := lastMonths(now, reportMonths)
	resp := &models.SeasonalResponse{
		MonthlyData:        make([]models.MonthlyExchanges, len(months)),
		CategoryTrends:     make([]models.CategoryTrend, 0),
		SeasonalPopularity: make(map[string][]models.CategoryCount, len(seasons)),
	}

	perMonth := make(map[string]*models.MonthlyExchanges, len(months))
	for i, m := range months {
		resp.MonthlyData[i] = models.MonthlyExchanges{Month: monthKey(m), Categories: map[string]int{}}
		perMonth[monthKey(m)] = &resp.MonthlyData[i]
	}

	trends := make(map[string][]int)
	perMonthOfYear := make(map[time.Month]map[string]int)
	for _, e := range spent {
		if !inWindow(e.at, months[0], now) {
			continue
		}
		if m, ok := perMonth[monthKey(e.at)]; ok {
			m.Total++
			m.Categories[e.category]++
		}

		counts, ok := trends[e.category]
		if !ok {
			counts = make([]int, 12)
			trends[e.category] = counts
		}
		counts[e.at.Month()-1]++

		if perMonthOfYear[e.at.Month()] == nil {
			perMonthOfYear[e.at.Month()] = make(map[string]int)
		}
		perMonthOfYear[e.at.Month()][e.category]++
	}

	for category, counts := range trends {
		peak, low := 0, 0
		for i := range counts {
			if counts[i] > counts[peak] {
				peak = i
			}
			if counts[i] < counts[low] {
				low = i
			}
		}
		resp.CategoryTrends = append(resp.CategoryTrends, models.CategoryTrend{
			Category: category,
			Counts:   counts,
			Peak:     peak + 1,
			Low:      low + 1,
		})
	}
	sort.Slice(resp.CategoryTrends, func(i, j int) bool {
		return resp.CategoryTrends[i].Category < resp.CategoryTrends[j].Category
	})

	for _, season := range seasons {
		counts := make(map[string]int)
		for _, month := range season.months {
			for category, n := range perMonthOfYear[month] {
				counts[category] += n
			}
		}
		top := sortedCounts(counts)
		if len(top) > seasonTopLimit {
			top = top[:seasonTopLimit]
		}
		resp.SeasonalPopularity[season.name] = top
	}

	return resp
}

// buildPoints считает начисление и расход баллов за последние 12 месяцев
func buildPoints(earned, spent []activity, now time.Time) *models.PointsResponse {
	months := lastMonths(now, reportMonths)
	resp := &models.PointsResponse{
		MonthlyData:         make([]models.MonthlyPoints, len(months)),
		AchievementPatterns: make([]int, dayParts),
		ExchangePatterns:    make([]int, dayParts),
	}

	perMonth := make(map[string]*models.MonthlyPoints, len(months))
	for i, m := range months {
		resp.MonthlyData[i] = models.MonthlyPoints{Month: monthKey(m)}
		perMonth[monthKey(m)] = &resp.MonthlyData[i]
	}

	earnedByCategory := make(map[string]int)
	for _, e := range earned {
		if !inWindow(e.at, months[0], now) {
			continue
		}
		if m, ok := perMonth[monthKey(e.at)]; ok {
			m.Earned += e.points
		}
		earnedByCategory[e.category] += e.points
		resp.AchievementPatterns[e.at.Hour()/hoursPerDayPart]++
		resp.TotalEarned += e.points
	}

	usedByCategory := make(map[string]int)
	for _, e := range spent {
		if !inWindow(e.at, months[0], now) {
			continue
		}
		if m, ok := perMonth[monthKey(e.at)]; ok {
			m.Used += e.points
		}
		usedByCategory[e.category] += e.points
		resp.ExchangePatterns[e.at.Hour()/hoursPerDayPart]++
		resp.TotalUsed += e.points
	}

	for i := range resp.MonthlyData {
		resp.MonthlyData[i].Balance = resp.MonthlyData[i].Earned - resp.MonthlyData[i].Used
	}
	resp.EarnedByCategory = sortedPoints(earnedByCategory)
	resp.UsedByCategory = sortedPoints(usedByCategory)

	return resp
}

type cohortMonth struct {
	users map[uuid.UUID]struct{}
	stats models.CohortActivity
}

type cohortAcc struct {
	users  int
	months map[int]*cohortMonth
}

// buildCohorts группирует пользователей по месяцу первого начисления
// и считает их активность в каждом следующем месяце
func buildCohorts(earned, spent []activity) *models.CohortResponse {
	firstMonth := make(map[uuid.UUID]time.Time)
	for _, e := range earned {
		start := time.Date(e.at.Year(), e.at.Month(), 1, 0, 0, 0, 0, e.at.Location())
		if first, ok := firstMonth[e.user]; !ok || start.Before(first) {
			firstMonth[e.user] = start
		}
	}

	cohorts := make(map[string]*cohortAcc)
	for _, start := range firstMonth {
		key := monthKey(start)
		if cohorts[key] == nil {
			cohorts[key] = &cohortAcc{months: make(map[int]*cohortMonth)}
		}
		cohorts[key].users++
	}

	// track возвращает ячейку активности пользователя или nil, если пользователь вне когорт
	track := func(e activity) *cohortMonth {
		start, ok := firstMonth[e.user]
		if !ok {
			return nil
		}
		idx := monthDiff(start, e.at)
		if idx < 0 {
			return nil
		}
		acc := cohorts[monthKey(start)]
		cell, ok := acc.months[idx]
		if !ok {
			cell = &cohortMonth{users: make(map[uuid.UUID]struct{}), stats: models.CohortActivity{Month: idx}}
			acc.months[idx] = cell
		}
		cell.users[e.user] = struct{}{}
		return cell
	}
	for _, e := range earned {
		if cell := track(e); cell != nil {
			cell.stats.Achievements++
			cell.stats.EarnedPoints += e.points
		}
	}
	for _, e := range spent {
		if cell := track(e); cell != nil {
			cell.stats.Exchanges++
			cell.stats.UsedPoints += e.points
		}
	}

	keys := make([]string, 0, len(cohorts))
	for key := range cohorts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	resp := &models.CohortResponse{Cohorts: make([]models.Cohort, 0, len(keys))}
	for _, key := range keys {
		acc := cohorts[key]
		cohort := models.Cohort{
			Cohort:          key,
			TotalUsers:      acc.users,
			MonthlyActivity: make([]models.CohortActivity, 0, len(acc.months)),
		}
		for _, cell := range acc.months {
			stats := cell.stats
			stats.ActiveUsers = len(cell.users)
			stats.RetentionRate = float64(stats.ActiveUsers) / float64(acc.users) * 100
			cohort.MonthlyActivity = append(cohort.MonthlyActivity, stats)
		}
		sort.Slice(cohort.MonthlyActivity, func(i, j int) bool {
			return cohort.MonthlyActivity[i].Month < cohort.MonthlyActivity[j].Month
		})
		resp.Cohorts = append(resp.Cohorts, cohort)
	}

	resp.Summary = summarizeCohorts(resp.Cohorts)
	return resp
}

// summarizeCohorts удержание считается по первому месяцу после старта когорты
func summarizeCohorts(cohorts []models.Cohort) models.CohortSummary {
	summary := models.CohortSummary{TotalCohorts: len(cohorts)}
	if len(cohorts) == 0 {
		return summary
	}

	var retentionSum, lifetimeSum float64
	retained := 0
	for _, c := range cohorts {
		earnedPoints := 0
		for _, a := range c.MonthlyActivity {
			earnedPoints += a.EarnedPoints
			if a.Month != 1 {
				continue
			}
			retentionSum += a.RetentionRate
			retained++
			if a.RetentionRate > summary.BestRetentionCohort.RetentionRate {
				summary.BestRetentionCohort = models.CohortRetention{Cohort: c.Cohort, RetentionRate: a.RetentionRate}
			}
		}
		lifetimeSum += float64(earnedPoints) / float64(c.TotalUsers)
	}

	if retained > 0 {
		summary.AverageRetention = retentionSum / float64(retained)
	}
	summary.AverageLifetimeValue = lifetimeSum / float64(len(cohorts))
	return summary
}

type userStats struct {
	achievements int
	earned       int
	exchanges    int
	used         int
	categories   map[string]struct{}
	first, last  time.Time
}

func (s *userStats) touch(at time.Time, category string) {
	if s.first.IsZero() || at.Before(s.first) {
		s.first = at
	}
	if at.After(s.last) {
		s.last = at
	}
	s.categories[category] = struct{}{}
}

// collectStats собирает статистику пользователей по событиям до asOf включительно
func collectStats(earned, spent []activity, asOf time.Time) map[uuid.UUID]*userStats {
	stats := make(map[uuid.UUID]*userStats)
	get := func(user uuid.UUID) *userStats {
		s, ok := stats[user]
		if !ok {
			s = &userStats{categories: make(map[string]struct{})}
			stats[user] = s
		}
		return s
	}

	for _, e := range earned {
		if e.at.After(asOf) {
			continue
		}
		s := get(e.user)
		s.achievements++
		s.earned += e.points
		s.touch(e.at, e.category)
	}
	for _, e := range spent {
		if e.at.After(asOf) {
			continue
		}
		s := get(e.user)
		s.exchanges++
		s.used += e.points
		s.touch(e.at, e.category)
	}
	return stats
}

// classify относит пользователя к сегменту на момент asOf
func classify(s *userStats, asOf time.Time) string {
	daysSinceLast := int(asOf.Sub(s.last).Hours() / 24)
	monthsSinceFirst := int(asOf.Sub(s.first).Hours() / 24 / daysPerMonth)

	frequency := float64(s.achievements)
	if monthsSinceFirst > 0 {
		frequency = float64(s.achievements) / float64(monthsSinceFirst)
	}

	switch {
	case s.earned >= vipMinPoints && len(s.categories) >= vipMinCategories && daysSinceLast <= recentDays:
		return SegmentVIP
	case daysSinceLast <= recentDays && frequency >= activeMinFrequency:
		return SegmentActive
	case daysSinceLast <= moderateDays && frequency >= moderateMinFrequency:
		return SegmentModerate
	case daysSinceLast <= riskDays && s.earned-s.used > 0:
		return SegmentRisk
	default:
		return SegmentInactive
	}
}

// buildSegments делит пользователей на сегменты сейчас и на конец каждого из последних 6 месяцев
func buildSegments(earned, spent []activity, now time.Time) *models.SegmentResponse {
	bySegment := make(map[string][]*userStats, len(segmentOrder))
	for _, s := range collectStats(earned, spent, now) {
		segment := classify(s, now)
		bySegment[segment] = append(bySegment[segment], s)
	}

	resp := &models.SegmentResponse{
		CurrentSegments: make([]models.SegmentStats, 0, len(segmentOrder)),
		SegmentTrends:   make([]models.SegmentTrend, 0, segmentTrendMonths),
	}
	for _, segment := range segmentOrder {
		resp.CurrentSegments = append(resp.CurrentSegments, segmentStats(segment, bySegment[segment]))
	}

	for _, start := range lastMonths(now, segmentTrendMonths) {
		asOf := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		if asOf.After(now) {
			asOf = now
		}

		trend := models.SegmentTrend{Month: monthKey(start)}
		for _, s := range collectStats(earned, spent, asOf) {
			switch classify(s, asOf) {
			case SegmentVIP:
				trend.VIP++
			case SegmentActive:
				trend.Active++
			case SegmentModerate:
				trend.Moderate++
			case SegmentRisk:
				trend.Risk++
			default:
				trend.Inactive++
			}
		}
		resp.SegmentTrends = append(resp.SegmentTrends, trend)
	}

	return resp
}

func segmentStats(segment string, users []*userStats) models.SegmentStats {
	stats := models.SegmentStats{Segment: segment, UserCount: len(users)}
	if len(users) == 0 {
		return stats
	}

	var points, achievements, exchanges, categories int
	for _, u := range users {
		points += u.earned
		achievements += u.achievements
		exchanges += u.exchanges
		categories += len(u.categories)
	}
	n := float64(len(users))
	stats.AveragePoints = float64(points) / n
	stats.AverageAchievements = float64(achievements) / n
	stats.AverageExchanges = float64(exchanges) / n
	stats.CategoryDiversity = float64(categories) / n
	return stats
}

// sortedCounts по убыванию количества, затем по названию категории
func sortedCounts(counts map[string]int) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, models.CategoryCount{Category: category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func sortedPoints(points map[string]int) []models.CategoryPoints {
	out := make([]models.CategoryPoints, 0, len(points))
	for category, n := range points {
		out = append(out, models.CategoryPoints{Category: category, Points: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Category < out[j].Category
	})
	return out
}
