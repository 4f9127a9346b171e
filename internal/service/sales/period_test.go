package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var jst = time.FixedZone("JST", 9*60*60)

func TestWindows(t *testing.T) {
	// четверг
	now := time.Date(2026, 10, 15, 14, 30, 0, 0, jst)

	tests := []struct {
		period   domain.SalesPeriod
		from     time.Time
		prevFrom time.Time
	}{
		{
			period:   domain.PeriodDaily,
			from:     time.Date(2026, 10, 15, 0, 0, 0, 0, jst),
			prevFrom: time.Date(2026, 10, 14, 0, 0, 0, 0, jst),
		},
		{
			period:   domain.PeriodWeekly,
			from:     time.Date(2026, 10, 12, 0, 0, 0, 0, jst),
			prevFrom: time.Date(2026, 10, 5, 0, 0, 0, 0, jst),
		},
		{
			period:   domain.PeriodMonthly,
			from:     time.Date(2026, 10, 1, 0, 0, 0, 0, jst),
			prevFrom: time.Date(2026, 9, 1, 0, 0, 0, 0, jst),
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			cur, prev := Windows(tt.period, now, jst)
			assert.True(t, cur.From.Equal(tt.from), "from %s", cur.From)
			assert.True(t, cur.To.Equal(now))
			assert.True(t, prev.From.Equal(tt.prevFrom), "prev from %s", prev.From)
			assert.True(t, prev.To.Equal(cur.From))
		})
	}
}

func TestWindows_WeekStartsOnMonday(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 20, 0, 0, 0, jst)
	cur, _ := Windows(domain.PeriodWeekly, sunday, jst)
	assert.True(t, cur.From.Equal(time.Date(2026, 10, 12, 0, 0, 0, 0, jst)))

	monday := time.Date(2026, 10, 19, 9, 0, 0, 0, jst)
	cur, _ = Windows(domain.PeriodWeekly, monday, jst)
	assert.True(t, cur.From.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, jst)))
}

func TestWindows_UsesSalonDay(t *testing.T) {
	// 2026-10-15 23:30 UTC это уже 16-е в Токио
	now := time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC)
	cur, _ := Windows(domain.PeriodDaily, now, jst)
	assert.True(t, cur.From.Equal(time.Date(2026, 10, 16, 0, 0, 0, 0, jst)))
}

func TestWindow_Contains(t *testing.T) {
	w := Window{From: time.Date(2026, 10, 1, 0, 0, 0, 0, jst), To: time.Date(2026, 10, 2, 0, 0, 0, 0, jst)}

	assert.True(t, w.Contains(w.From))
	assert.False(t, w.Contains(w.To))
	assert.False(t, w.Contains(w.From.Add(-time.Nanosecond)))
}

func TestChartWindow(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, jst)

	w, layout := ChartWindow(domain.PeriodDaily, now)
	assert.Equal(t, "1/2", layout)
	assert.True(t, w.From.Equal(now.AddDate(0, 0, -7)))

	w, _ = ChartWindow(domain.PeriodWeekly, now)
	assert.True(t, w.From.Equal(now.AddDate(0, 0, -28)))

	w, layout = ChartWindow(domain.PeriodMonthly, now)
	assert.Equal(t, "2006/1", layout)
	assert.True(t, w.From.Equal(now.AddDate(0, 0, -180)))
}
