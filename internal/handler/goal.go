package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/readmate/readmate/internal/events"
	"github.com/readmate/readmate/internal/service"
	"github.com/readmate/readmate/internal/ui"
	"github.com/readmate/readmate/internal/ui/pages"
	"github.com/readmate/readmate/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
	broker      *events.Broker
	keepAlive   time.Duration
}

func NewGoalHandler(goalService *service.GoalService, broker *events.Broker, keepAlive time.Duration) *GoalHandler {
	if keepAlive <= 0 {
		keepAlive = 25 * time.Second
	}
	return &GoalHandler{
		goalService: goalService,
		broker:      broker,
		keepAlive:   keepAlive,
	}
}

func (h *GoalHandler) GoalsPage(w http.ResponseWriter, r *http.Request) {
	h.renderGoals(w, r, http.StatusOK, "")
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	goalType := r.FormValue("type")
	pages := validation.CoerceInt(r.FormValue("pages_per_period"))

	goal, err := h.goalService.Create(goalType, pages)
	if statusFor(err) == http.StatusBadRequest {
		h.renderGoals(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, err, "Failed to create goal")
		return
	}

	h.broker.Publish(events.Event{Type: events.TypeGoalCreated, GoalID: goal.ID})
	http.Redirect(w, r, "/goals", http.StatusSeeOther)
}

func (h *GoalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	err := h.goalService.SetStatus(goalID, r.FormValue("status"))
	if err != nil {
		writeError(w, err, "Failed to update goal", "goal_id", goalID)
		return
	}

	h.broker.Publish(events.Event{Type: events.TypeGoalStatus, GoalID: goalID})
	http.Redirect(w, r, "/goals", http.StatusSeeOther)
}

// Progress returns the goal, its ledger and the evaluated stats as JSON.
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	overview, err := h.goalService.Overview(goalID)
	if err != nil {
		writeError(w, err, "Failed to load goal progress", "goal_id", goalID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(overview)
	if err != nil {
		slog.Error("failed to encode goal progress", "error", err, "goal_id", goalID)
	}
}

func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.goalService.Overviews()
	if err != nil {
		slog.Error("failed to list goals for export", "error", err)
		http.Error(w, "Failed to export goals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=goals-export.json")

	err = json.NewEncoder(w).Encode(overviews)
	if err != nil {
		slog.Error("failed to encode goals", "error", err)
	}
}

// Events streams change notifications as server-sent events until the
// client goes away. Comment lines keep idle connections open.
func (h *GoalHandler) Events(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := h.broker.Subscribe()
	defer cancel()

	fmt.Fprint(w, ": connected\n\n")
	if err := rc.Flush(); err != nil {
		slog.Error("event stream not supported", "error", err)
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
		case e, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				slog.Error("failed to encode event", "error", err, "type", e.Type)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
		}

		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func (h *GoalHandler) renderGoals(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	overviews, err := h.goalService.Overviews()
	if err != nil {
		slog.Error("failed to get goals", "error", err)
		http.Error(w, "Failed to load goals", http.StatusInternalServerError)
		return
	}

	data := pages.GoalsData{
		Base:  pages.NewBase(r.Context(), "Reading Goals"),
		Goals: make([]pages.GoalView, 0, len(overviews)),
		Error: errMsg,
	}
	data.Live = true

	for _, o := range overviews {
		view := pages.GoalView{Goal: o.Goal, Stats: o.Stats, Streak: o.Streak}
		if data.Active == nil && o.Goal.IsActive() {
			active := view
			data.Active = &active
		}
		data.Goals = append(data.Goals, view)
	}

	ui.RenderStatus(w, r, status, pages.Goals(data))
}
