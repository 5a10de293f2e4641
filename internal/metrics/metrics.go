// Package metrics exposes Prometheus counters for reading activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the services report reading activity through.
type Recorder interface {
	RecordGoalCreated(goalType string)
	RecordGoalStatus(status, reason string)
	RecordPages(pages int)
	RecordBookProgress(bookID string)
}

type Collector struct {
	goalsCreated *prometheus.CounterVec
	goalStatus   *prometheus.CounterVec
	pagesRead    prometheus.Counter
	pagesUnread  prometheus.Counter
	bookProgress prometheus.Counter
}

// NewCollector registers the reading metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		goalsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "readmate_goals_created_total",
			Help: "Reading goals created, by goal type.",
		}, []string{"type"}),
		goalStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "readmate_goal_status_changes_total",
			Help: "Goal status transitions, by new status and cause.",
		}, []string{"status", "reason"}),
		pagesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "readmate_pages_read_total",
			Help: "Positive page deltas fanned out to active goals.",
		}),
		pagesUnread: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "readmate_pages_unread_total",
			Help: "Negative page deltas fanned out to active goals, as a positive count.",
		}),
		bookProgress: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "readmate_book_progress_updates_total",
			Help: "Book progress updates that changed the current page.",
		}),
	}

	reg.MustRegister(
		c.goalsCreated,
		c.goalStatus,
		c.pagesRead,
		c.pagesUnread,
		c.bookProgress,
	)

	return c
}

func (c *Collector) RecordGoalCreated(goalType string) {
	c.goalsCreated.WithLabelValues(goalType).Inc()
}

func (c *Collector) RecordGoalStatus(status, reason string) {
	c.goalStatus.WithLabelValues(status, reason).Inc()
}

func (c *Collector) RecordPages(pages int) {
	if pages >= 0 {
		c.pagesRead.Add(float64(pages))
		return
	}
	c.pagesUnread.Add(float64(-pages))
}

func (c *Collector) RecordBookProgress(bookID string) {
	c.bookProgress.Inc()
}

// Handler returns the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
