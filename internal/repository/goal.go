package repository

import (
	"errors"
	"fmt"

	"github.com/readmate/readmate/internal/model"
	"github.com/readmate/readmate/internal/store"
)

// goalsKey holds every goal ever created, newest first.
const goalsKey = "reading_goals"

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(goalID string) (*model.Goal, error)
	Goals() ([]*model.Goal, error)
	Active() ([]*model.Goal, error)
	UpdateStatus(goalID, status string) error
	Delete(goalID string) error
}

type goalRepository struct {
	store store.Store
}

func NewGoalRepository(s store.Store) GoalRepository {
	return &goalRepository{store: s}
}

func (r *goalRepository) load() ([]*model.Goal, error) {
	var goals []*model.Goal
	_, err := r.store.Get(goalsKey, &goals)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	return goals, nil
}

func (r *goalRepository) Create(goal *model.Goal) error {
	goals, err := r.load()
	if err != nil {
		return err
	}

	goals = append([]*model.Goal{goal}, goals...)
	return r.store.Set(goalsKey, goals)
}

func (r *goalRepository) ByID(goalID string) (*model.Goal, error) {
	goals, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, g := range goals {
		if g.ID == goalID {
			return g, nil
		}
	}

	return nil, ErrGoalNotFound
}

func (r *goalRepository) Goals() ([]*model.Goal, error) {
	goals, err := r.load()
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []*model.Goal{}
	}
	return goals, nil
}

// Active returns the active goals in storage order.
func (r *goalRepository) Active() ([]*model.Goal, error) {
	goals, err := r.load()
	if err != nil {
		return nil, err
	}

	var active []*model.Goal
	for _, g := range goals {
		if g.IsActive() {
			active = append(active, g)
		}
	}

	return active, nil
}

func (r *goalRepository) UpdateStatus(goalID, status string) error {
	goals, err := r.load()
	if err != nil {
		return err
	}

	found := false
	for _, g := range goals {
		if g.ID == goalID {
			g.Status = status
			found = true
			break
		}
	}

	if !found {
		return ErrGoalNotFound
	}

	return r.store.Set(goalsKey, goals)
}

func (r *goalRepository) Delete(goalID string) error {
	goals, err := r.load()
	if err != nil {
		return err
	}

	kept := goals[:0]
	for _, g := range goals {
		if g.ID != goalID {
			kept = append(kept, g)
		}
	}

	if len(kept) == len(goals) {
		return ErrGoalNotFound
	}

	return r.store.Set(goalsKey, kept)
}
