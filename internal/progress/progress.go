// Package progress computes goal progress and reading streaks from a goal's
// ledger. Everything here is pure: callers pass the clock in.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/readmate/readmate/internal/model"
)

// Evaluate reports how far goal has come in the period containing now.
// Daily goals count today's entry, monthly goals sum every entry in the
// calendar month of now. Dates are read in now's location.
//
// Percentage is capped at 100 but not floored: a ledger that went negative
// yields a negative percentage.
func Evaluate(goal *model.Goal, ledger *model.GoalProgress, now time.Time) model.ProgressStats {
	stats := model.ProgressStats{Target: goal.PagesPerPeriod}

	if ledger != nil {
		switch goal.Type {
		case model.GoalTypeDaily:
			stats.Current = daily(ledger, now)
		case model.GoalTypeMonthly:
			stats.Current = monthly(ledger, now)
		}
	}

	if stats.Target > 0 {
		stats.Percentage = math.Min(100, float64(stats.Current)/float64(stats.Target)*100)
	}

	return stats
}

// Completed is the auto-completion signal for an active goal.
func Completed(stats model.ProgressStats) bool {
	return stats.Percentage >= 100
}

func daily(ledger *model.GoalProgress, now time.Time) int {
	day := ledger.Day(now.Format(model.DateLayout))
	if day == nil {
		return 0
	}
	return day.PagesRead
}

func monthly(ledger *model.GoalProgress, now time.Time) int {
	total := 0
	for _, p := range ledger.DailyProgress {
		date, err := time.ParseInLocation(model.DateLayout, p.Date, now.Location())
		if err != nil {
			continue
		}
		if date.Year() == now.Year() && date.Month() == now.Month() {
			total += p.PagesRead
		}
	}
	return total
}

// CalculateStreak counts consecutive days with a ledger entry, ending today.
// A history whose latest entry is not today has no streak. The walk stops at
// the first gap that is not exactly one day; the value of pagesRead is ignored.
func CalculateStreak(days []model.DailyProgress, now time.Time) int {
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		date, err := time.Parse(model.DateLayout, d.Date)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	if len(dates) == 0 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	if dates[0].Format(model.DateLayout) != now.Format(model.DateLayout) {
		return 0
	}

	streak := 1
	for i := 1; i < len(dates); i++ {
		// dates are parsed as UTC midnights, so every day is exactly 24h
		gap := int(math.Floor(dates[i-1].Sub(dates[i]).Hours() / 24))
		if gap != 1 {
			break
		}
		streak++
	}

	return streak
}
