package validation

import "github.com/readmate/readmate/internal/model"

func ValidateGoal(goalType string, pagesPerPeriod int) error {
	if !model.ValidGoalType(goalType) {
		return invalid("goal type must be daily or monthly")
	}

	if pagesPerPeriod <= 0 {
		return invalid("pages per period must be a positive number")
	}

	return nil
}
