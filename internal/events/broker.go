// Package events carries change notifications from the HTTP layer to
// listening pages, so they can refresh without polling.
package events

import (
	"log/slog"
	"sync"
	"time"
)

const (
	TypeBookProgress = "book.progress"
	TypeBookUpdated  = "book.updated"
	TypeGoalCreated  = "goal.created"
	TypeGoalStatus   = "goal.status"
)

type Event struct {
	Type   string    `json:"type"`
	BookID string    `json:"bookId,omitempty"`
	GoalID string    `json:"goalId,omitempty"`
	At     time.Time `json:"at"`
}

// Broker fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Broker struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
	buffer      int
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{
		subscribers: make(map[chan Event]struct{}),
		buffer:      buffer,
	}
}

// Subscribe registers a listener. The returned func unsubscribes and closes
// the channel; it is safe to call more than once.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, ch)
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

func (b *Broker) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			slog.Warn("dropping event for slow subscriber", "type", e.Type)
		}
	}
}

func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
