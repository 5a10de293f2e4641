package progress

import (
	"testing"
	"time"

	"github.com/readmate/readmate/internal/model"
)

func ledger(days ...model.DailyProgress) *model.GoalProgress {
	return &model.GoalProgress{GoalID: "g-1", DailyProgress: days}
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2024, 2, 1, 18, 30, 0, 0, time.Local)
	daily := &model.Goal{ID: "g-1", Type: model.GoalTypeDaily, PagesPerPeriod: 20, Status: model.GoalStatusActive}
	monthly := &model.Goal{ID: "g-1", Type: model.GoalTypeMonthly, PagesPerPeriod: 300, Status: model.GoalStatusActive}

	tests := []struct {
		name   string
		goal   *model.Goal
		ledger *model.GoalProgress
		want   model.ProgressStats
	}{
		{
			name:   "daily over target is capped",
			goal:   daily,
			ledger: ledger(model.DailyProgress{Date: "2024-02-01", PagesRead: 25}),
			want:   model.ProgressStats{Target: 20, Current: 25, Percentage: 100},
		},
		{
			name:   "daily partial",
			goal:   daily,
			ledger: ledger(model.DailyProgress{Date: "2024-01-31", PagesRead: 40}, model.DailyProgress{Date: "2024-02-01", PagesRead: 5}),
			want:   model.ProgressStats{Target: 20, Current: 5, Percentage: 25},
		},
		{
			name:   "daily without entry for today",
			goal:   daily,
			ledger: ledger(model.DailyProgress{Date: "2024-01-31", PagesRead: 40}),
			want:   model.ProgressStats{Target: 20, Current: 0, Percentage: 0},
		},
		{
			name:   "monthly only counts the current month",
			goal:   &model.Goal{ID: "g-2", Type: model.GoalTypeMonthly, PagesPerPeriod: 20, Status: model.GoalStatusActive},
			ledger: ledger(model.DailyProgress{Date: "2024-01-31", PagesRead: 10}, model.DailyProgress{Date: "2024-02-01", PagesRead: 5}),
			want:   model.ProgressStats{Target: 20, Current: 5, Percentage: 25},
		},
		{
			name:   "monthly ignores same month of another year",
			goal:   monthly,
			ledger: ledger(model.DailyProgress{Date: "2023-02-10", PagesRead: 150}, model.DailyProgress{Date: "2024-02-01", PagesRead: 150}),
			want:   model.ProgressStats{Target: 300, Current: 150, Percentage: 50},
		},
		{
			name:   "negative progress is not floored",
			goal:   daily,
			ledger: ledger(model.DailyProgress{Date: "2024-02-01", PagesRead: -10}),
			want:   model.ProgressStats{Target: 20, Current: -10, Percentage: -50},
		},
		{
			name:   "missing ledger",
			goal:   daily,
			ledger: nil,
			want:   model.ProgressStats{Target: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.goal, tt.ledger, now)
			if got != tt.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompleted(t *testing.T) {
	if !Completed(model.ProgressStats{Percentage: 100}) {
		t.Error("100% should complete")
	}
	if Completed(model.ProgressStats{Percentage: 99.9}) {
		t.Error("99.9% should not complete")
	}
	if Completed(model.ProgressStats{Percentage: -50}) {
		t.Error("negative progress should not complete")
	}
}

func TestCalculateStreak(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	today := "2024-03-01"

	tests := []struct {
		name string
		days []model.DailyProgress
		want int
	}{
		{"empty", nil, 0},
		{"consecutive", []model.DailyProgress{{Date: "2024-02-28", PagesRead: 5}, {Date: "2024-02-29", PagesRead: 5}, {Date: today, PagesRead: 5}}, 3},
		{"gap breaks the walk", []model.DailyProgress{{Date: "2024-02-28", PagesRead: 5}, {Date: today, PagesRead: 5}}, 1},
		{"latest entry is not today", []model.DailyProgress{{Date: "2024-02-28", PagesRead: 5}, {Date: "2024-02-29", PagesRead: 5}}, 0},
		{"unordered input", []model.DailyProgress{{Date: today, PagesRead: 1}, {Date: "2024-02-28", PagesRead: 1}, {Date: "2024-02-29", PagesRead: 1}}, 3},
		{"zero and negative days still count", []model.DailyProgress{{Date: "2024-02-29", PagesRead: -3}, {Date: today, PagesRead: 0}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateStreak(tt.days, now); got != tt.want {
				t.Errorf("CalculateStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}
