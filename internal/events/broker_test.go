package events

import (
	"testing"
	"time"
)

func TestBroker_DeliversToAllSubscribers(t *testing.T) {
	b := NewBroker(4)
	first, cancelFirst := b.Subscribe()
	defer cancelFirst()
	second, cancelSecond := b.Subscribe()
	defer cancelSecond()

	b.Publish(Event{Type: TypeGoalStatus, GoalID: "g-1"})

	for i, ch := range []<-chan Event{first, second} {
		select {
		case e := <-ch:
			if e.Type != TypeGoalStatus || e.GoalID != "g-1" {
				t.Errorf("subscriber %d got %+v", i, e)
			}
			if e.At.IsZero() {
				t.Errorf("subscriber %d got event without timestamp", i)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d got nothing", i)
		}
	}
}

func TestBroker_PublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	b := NewBroker(1)
	ch, cancel := b.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			b.Publish(Event{Type: TypeBookProgress, BookID: "b-1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}

	if got := len(ch); got != 1 {
		t.Errorf("buffered events = %d, want 1", got)
	}
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	b := NewBroker(1)
	ch, cancel := b.Subscribe()

	cancel()
	cancel()

	if n := b.Subscribers(); n != 0 {
		t.Errorf("subscribers = %d, want 0", n)
	}
	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}

	b.Publish(Event{Type: TypeGoalCreated})
}
