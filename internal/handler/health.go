package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/readmate/readmate/internal/store"
)

// healthKey is read on every probe to prove the store answers.
const healthKey = "readmate_books"

type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	_, err := h.store.Get(healthKey, &raw)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		slog.Error("health check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
