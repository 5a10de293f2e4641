package model

import (
	"time"
)

const (
	GoalTypeDaily   = "daily"
	GoalTypeMonthly = "monthly"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusAbandoned = "abandoned"
)

type Goal struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	PagesPerPeriod int       `json:"pagesPerPeriod"`
	CreatedAt      time.Time `json:"createdAt"`
	Status         string    `json:"status"`
}

func (g *Goal) IsActive() bool {
	return g.Status == GoalStatusActive
}

// ValidGoalType reports whether t names a supported aggregation window.
func ValidGoalType(t string) bool {
	return t == GoalTypeDaily || t == GoalTypeMonthly
}

func ValidGoalStatus(s string) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusAbandoned:
		return true
	}
	return false
}
