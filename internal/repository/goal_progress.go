package repository

import (
	"errors"
	"fmt"

	"github.com/readmate/readmate/internal/model"
	"github.com/readmate/readmate/internal/store"
)

// goalProgressKey holds one ledger per goal, in creation order.
const goalProgressKey = "goal_progress"

var (
	ErrGoalProgressNotFound = errors.New("goal progress not found")
)

type GoalProgressRepository interface {
	Create(goalID string) error
	ByGoalID(goalID string) (*model.GoalProgress, error)
	All() ([]*model.GoalProgress, error)
	AddPages(goalID, date string, pages int) (*model.GoalProgress, error)
}

type goalProgressRepository struct {
	store store.Store
}

func NewGoalProgressRepository(s store.Store) GoalProgressRepository {
	return &goalProgressRepository{store: s}
}

func (r *goalProgressRepository) load() ([]*model.GoalProgress, error) {
	var ledgers []*model.GoalProgress
	_, err := r.store.Get(goalProgressKey, &ledgers)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal progress: %w", err)
	}
	return ledgers, nil
}

// Create appends an empty ledger for goalID. Existing ledgers are left as they are.
func (r *goalProgressRepository) Create(goalID string) error {
	ledgers, err := r.load()
	if err != nil {
		return err
	}

	for _, l := range ledgers {
		if l.GoalID == goalID {
			return nil
		}
	}

	ledgers = append(ledgers, &model.GoalProgress{
		GoalID:        goalID,
		DailyProgress: []model.DailyProgress{},
	})

	return r.store.Set(goalProgressKey, ledgers)
}

func (r *goalProgressRepository) ByGoalID(goalID string) (*model.GoalProgress, error) {
	ledgers, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, l := range ledgers {
		if l.GoalID == goalID {
			return l, nil
		}
	}

	return nil, ErrGoalProgressNotFound
}

func (r *goalProgressRepository) All() ([]*model.GoalProgress, error) {
	ledgers, err := r.load()
	if err != nil {
		return nil, err
	}
	if ledgers == nil {
		ledgers = []*model.GoalProgress{}
	}
	return ledgers, nil
}

// AddPages adds pages (which may be negative) to the entry for date,
// inserting the entry when the day has none yet. Nothing is written
// when goalID has no ledger.
func (r *goalProgressRepository) AddPages(goalID, date string, pages int) (*model.GoalProgress, error) {
	ledgers, err := r.load()
	if err != nil {
		return nil, err
	}

	var ledger *model.GoalProgress
	for _, l := range ledgers {
		if l.GoalID == goalID {
			ledger = l
			break
		}
	}

	if ledger == nil {
		return nil, ErrGoalProgressNotFound
	}

	if day := ledger.Day(date); day != nil {
		day.PagesRead += pages
	} else {
		ledger.DailyProgress = append(ledger.DailyProgress, model.DailyProgress{
			Date:      date,
			PagesRead: pages,
		})
	}

	err = r.store.Set(goalProgressKey, ledgers)
	if err != nil {
		return nil, err
	}

	return ledger, nil
}
