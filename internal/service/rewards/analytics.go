package rewards

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/rewards/models"
)

const (
	activeUsersWindowDays = 30
	usageHistoryDays      = 7
	popularRewardsLimit   = 10
)

// buildAnalytics считает сводку по списку обменов на момент now
// Дни отсчитываются в часовом поясе loc
func buildAnalytics(exchanges []domain.RewardExchange, now time.Time, loc *time.Location) *models.AnalyticsResponse {
	now = now.In(loc)
	resp := &models.AnalyticsResponse{
		TotalExchanges:       len(exchanges),
		UsageHistory:         make([]models.DailyUsage, 0, usageHistoryDays),
		CategoryDistribution: make([]models.CategoryCount, 0),
		PopularRewards:       make([]models.PopularRewardEntry, 0),
	}

	activeSince := now.AddDate(0, 0, -activeUsersWindowDays)
	activeUsers := make(map[uuid.UUID]struct{})
	perDay := make(map[string]int)
	perCategory := make(map[string]int)
	perReward := make(map[int64]*models.PopularRewardEntry)

	for i := range exchanges {
		ex := &exchanges[i]
		resp.TotalPointsUsed += ex.Points

		if !ex.CreatedAt.Before(activeSince) {
			activeUsers[ex.UserID] = struct{}{}
		}
		perDay[ex.CreatedAt.In(loc).Format(domain.DateFormat)]++

		if ex.Reward == nil {
			continue
		}
		perCategory[ex.Reward.Category]++

		entry, ok := perReward[ex.RewardID]
		if !ok {
			entry = &models.PopularRewardEntry{
				ID:       ex.Reward.ID,
				Title:    ex.Reward.Title,
				Category: ex.Reward.Category,
				Points:   ex.Reward.Points,
			}
			perReward[ex.RewardID] = entry
		}
		entry.ExchangeCount++
	}
	resp.ActiveUsers = len(activeUsers)

	// от самого старого дня к сегодняшнему
	for i := usageHistoryDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(domain.DateFormat)
		resp.UsageHistory = append(resp.UsageHistory, models.DailyUsage{Date: day, Exchanges: perDay[day]})
	}

	for category, count := range perCategory {
		resp.CategoryDistribution = append(resp.CategoryDistribution, models.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(resp.CategoryDistribution, func(i, j int) bool {
		a, b := resp.CategoryDistribution[i], resp.CategoryDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})

	for _, entry := range perReward {
		resp.PopularRewards = append(resp.PopularRewards, *entry)
	}
	sort.Slice(resp.PopularRewards, func(i, j int) bool {
		a, b := resp.PopularRewards[i], resp.PopularRewards[j]
		if a.ExchangeCount != b.ExchangeCount {
			return a.ExchangeCount > b.ExchangeCount
		}
		return a.ID < b.ID
	})
	if len(resp.PopularRewards) > popularRewardsLimit {
		resp.PopularRewards = resp.PopularRewards[:popularRewardsLimit]
	}

	return resp
}
