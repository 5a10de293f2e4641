package service

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/readmate/readmate/internal/metrics"
	"github.com/readmate/readmate/internal/repository"
	"github.com/readmate/readmate/internal/store"
)

// fixedNow is 2024-02-01 20:00 local time.
var fixedNow = time.Date(2024, 2, 1, 20, 0, 0, 0, time.Local)

type testEnv struct {
	store *store.MemoryStore
	goals *GoalService
	books *BookService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, store.NewMemoryStore())
}

func newTestEnvWithStore(t *testing.T, s store.Store) *testEnv {
	t.Helper()
	now := func() time.Time { return fixedNow }
	recorder := metrics.NewCollector(prometheus.NewRegistry())

	goals := NewGoalService(repository.NewGoalRepository(s), repository.NewGoalProgressRepository(s), recorder, now)
	books := NewBookService(repository.NewBookRepository(s), goals, recorder, now)

	mem, _ := s.(*store.MemoryStore)
	return &testEnv{store: mem, goals: goals, books: books}
}

// failingStore rejects writes to one record.
type failingStore struct {
	store.Store
	failKey string
}

var errStoreDown = errors.New("store unavailable")

func (f *failingStore) Set(key string, value any) error {
	if key == f.failKey {
		return errStoreDown
	}
	return f.Store.Set(key, value)
}
