package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewDevelopmentUsesTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, "")

	log.Debug("page delta recorded", "pages", 25)

	out := buf.String()
	if !strings.Contains(out, "msg=\"page delta recorded\"") || !strings.Contains(out, "pages=25") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNewProductionUsesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, "")

	log.Debug("hidden")
	log.Info("goal created", "goal_id", "g1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "goal created" || entry["goal_id"] != "g1" {
		t.Errorf("unexpected entry: %v", entry)
	}
}
