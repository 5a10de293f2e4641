package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/readmate/readmate/internal/metrics"
	"github.com/readmate/readmate/internal/model"
	"github.com/readmate/readmate/internal/progress"
	"github.com/readmate/readmate/internal/repository"
	"github.com/readmate/readmate/internal/validation"
)

var (
	ErrInvalidGoalStatus = errors.New("invalid goal status")
)

// GoalOverview bundles a goal with its ledger and the figures derived from it.
type GoalOverview struct {
	Goal     *model.Goal         `json:"goal"`
	Progress *model.GoalProgress `json:"progress"`
	Stats    model.ProgressStats `json:"stats"`
	Streak   int                 `json:"streak"`
}

// GoalService owns goals and their ledgers. Every mutation is a
// read-modify-write against the store, serialised by mu.
type GoalService struct {
	mu           sync.Mutex
	repo         repository.GoalRepository
	progressRepo repository.GoalProgressRepository
	metrics      metrics.Recorder
	now          func() time.Time
}

func NewGoalService(
	repo repository.GoalRepository,
	progressRepo repository.GoalProgressRepository,
	recorder metrics.Recorder,
	now func() time.Time,
) *GoalService {
	if now == nil {
		now = time.Now
	}
	return &GoalService{
		repo:         repo,
		progressRepo: progressRepo,
		metrics:      recorder,
		now:          now,
	}
}

// Today is the ledger key for the current local day.
func (s *GoalService) Today() string {
	return s.now().Format(model.DateLayout)
}

// Create starts a new active goal. Any goal that is still active is
// completed first, so exactly one goal is active afterwards.
func (s *GoalService) Create(goalType string, pagesPerPeriod int) (*model.Goal, error) {
	err := validation.ValidateGoal(goalType, pagesPerPeriod)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.repo.Active()
	if err != nil {
		return nil, err
	}

	for _, g := range active {
		err = s.setStatus(g.ID, model.GoalStatusCompleted, "replaced")
		if err != nil {
			return nil, fmt.Errorf("failed to complete previous goal: %w", err)
		}
	}

	goal := &model.Goal{
		ID:             uuid.New().String(),
		Type:           goalType,
		PagesPerPeriod: pagesPerPeriod,
		CreatedAt:      s.now(),
		Status:         model.GoalStatusActive,
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	err = s.progressRepo.Create(goal.ID)
	if err != nil {
		// Rollback: a goal must never exist without its ledger
		delErr := s.repo.Delete(goal.ID)
		if delErr != nil {
			slog.Error("failed to delete goal during rollback", "error", delErr, "goal_id", goal.ID)
		}
		return nil, fmt.Errorf("failed to create goal progress: %w", err)
	}

	s.metrics.RecordGoalCreated(goalType)
	slog.Info("goal created", "goal_id", goal.ID, "type", goalType, "pages_per_period", pagesPerPeriod)

	return goal, nil
}

// SetStatus overwrites the status of a goal. It does not check the
// transition, so reactivating a goal while another is active is possible;
// only Create keeps the single-active rule.
func (s *GoalService) SetStatus(goalID, status string) error {
	if !model.ValidGoalStatus(status) {
		return ErrInvalidGoalStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setStatus(goalID, status, "manual")
}

func (s *GoalService) setStatus(goalID, status, reason string) error {
	err := s.repo.UpdateStatus(goalID, status)
	if err != nil {
		return err
	}

	s.metrics.RecordGoalStatus(status, reason)
	slog.Info("goal status changed", "goal_id", goalID, "status", status, "reason", reason)
	return nil
}

// ActiveGoal returns the first active goal in storage order, or nil.
func (s *GoalService) ActiveGoal() (*model.Goal, error) {
	active, err := s.repo.Active()
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}
	return active[0], nil
}

func (s *GoalService) ByID(goalID string) (*model.Goal, error) {
	return s.repo.ByID(goalID)
}

func (s *GoalService) Goals() ([]*model.Goal, error) {
	return s.repo.Goals()
}

func (s *GoalService) Progress(goalID string) (*model.GoalProgress, error) {
	return s.progressRepo.ByGoalID(goalID)
}

// Overview evaluates a single goal against the current clock.
func (s *GoalService) Overview(goalID string) (*GoalOverview, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}

	ledger, err := s.progressRepo.ByGoalID(goalID)
	if err != nil {
		return nil, err
	}

	return s.overview(goal, ledger), nil
}

// Overviews evaluates every goal, newest first. Goals without a ledger are
// reported with empty progress.
func (s *GoalService) Overviews() ([]*GoalOverview, error) {
	goals, err := s.repo.Goals()
	if err != nil {
		return nil, err
	}

	ledgers, err := s.progressRepo.All()
	if err != nil {
		return nil, err
	}

	byGoal := make(map[string]*model.GoalProgress, len(ledgers))
	for _, l := range ledgers {
		byGoal[l.GoalID] = l
	}

	overviews := make([]*GoalOverview, 0, len(goals))
	for _, g := range goals {
		ledger, ok := byGoal[g.ID]
		if !ok {
			slog.Warn("goal has no progress ledger", "goal_id", g.ID)
			ledger = &model.GoalProgress{GoalID: g.ID, DailyProgress: []model.DailyProgress{}}
		}
		overviews = append(overviews, s.overview(g, ledger))
	}

	return overviews, nil
}

func (s *GoalService) overview(goal *model.Goal, ledger *model.GoalProgress) *GoalOverview {
	now := s.now()
	return &GoalOverview{
		Goal:     goal,
		Progress: ledger,
		Stats:    progress.Evaluate(goal, ledger, now),
		Streak:   progress.CalculateStreak(ledger.DailyProgress, now),
	}
}

// ApplyDelta adds pages to the ledger entry for date and completes the goal
// when it is active and has reached its target.
func (s *GoalService) ApplyDelta(goalID, date string, pages int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyDelta(goalID, date, pages)
}

// ApplyDeltaToGoals applies the same delta to every goal in goalIDs.
// It stops at the first failure.
func (s *GoalService) ApplyDeltaToGoals(goalIDs []string, date string, pages int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyDeltaToGoals(goalIDs, date, pages)
}

func (s *GoalService) applyDeltaToGoals(goalIDs []string, date string, pages int) error {
	for _, id := range goalIDs {
		err := s.applyDelta(id, date, pages)
		if err != nil {
			return fmt.Errorf("goal %s: %w", id, err)
		}
	}
	return nil
}

func (s *GoalService) applyDelta(goalID, date string, pages int) error {
	ledger, err := s.progressRepo.AddPages(goalID, date, pages)
	if err != nil {
		return err
	}

	goal, err := s.repo.ByID(goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		slog.Warn("progress ledger without goal", "goal_id", goalID)
		return nil
	}
	if err != nil {
		return err
	}

	if !goal.IsActive() {
		return nil
	}

	stats := progress.Evaluate(goal, ledger, s.now())
	if !progress.Completed(stats) {
		return nil
	}

	return s.setStatus(goalID, model.GoalStatusCompleted, "target_reached")
}

// RecordPageDelta fans a book's page change out to every active goal under
// today's date. The change is not tied to any particular book or goal.
func (s *GoalService) RecordPageDelta(oldPage, newPage int) error {
	delta := newPage - oldPage
	if delta == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.repo.Active()
	if err != nil {
		return err
	}

	if len(active) == 0 {
		return nil
	}

	ids := make([]string, 0, len(active))
	for _, g := range active {
		ids = append(ids, g.ID)
	}

	err = s.applyDeltaToGoals(ids, s.Today(), delta)
	if err != nil {
		return err
	}

	s.metrics.RecordPages(delta)
	return nil
}
