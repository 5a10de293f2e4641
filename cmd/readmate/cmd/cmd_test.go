package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/readmate/readmate/internal/app"
	"github.com/readmate/readmate/internal/config"
	"github.com/readmate/readmate/internal/service"
)

func setupApp(t *testing.T) *app.App {
	t.Helper()

	a, err := app.New(&config.Config{StoreBackend: config.StoreMemory, Timezone: "UTC"})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}

	prev := openApp
	openApp = func() (*app.App, error) { return a, nil }
	t.Cleanup(func() { openApp = prev })

	return a
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := Root()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestBooksAddAndList(t *testing.T) {
	setupApp(t)

	out, err := run(t, "books", "add", "Dune", "--author", "Frank Herbert", "--pages", "412")
	if err != nil {
		t.Fatalf("books add: %v", err)
	}
	if !strings.HasPrefix(out, "added Dune") {
		t.Errorf("add output = %q", out)
	}

	out, err = run(t, "books", "list")
	if err != nil {
		t.Fatalf("books list: %v", err)
	}
	for _, want := range []string{"Dune", "Frank Herbert", "0/412 (0%)", "reading"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestBooksAddRejectsInvalid(t *testing.T) {
	setupApp(t)

	_, err := run(t, "books", "add", "Dune", "--author", "Frank Herbert")
	if err == nil {
		t.Fatal("expected error for missing page count")
	}
}

func TestProgressFeedsGoals(t *testing.T) {
	a := setupApp(t)

	_, err := run(t, "goals", "create", "daily", "20")
	if err != nil {
		t.Fatalf("goals create: %v", err)
	}

	book, err := a.BookService.Create(service.CreateBookParams{Title: "Dune", Author: "Frank Herbert", TotalPages: 412})
	if err != nil {
		t.Fatalf("Create book: %v", err)
	}

	out, err := run(t, "books", "progress", book.ID, "5")
	if err != nil {
		t.Fatalf("books progress: %v", err)
	}
	if !strings.Contains(out, "page 5 of 412") {
		t.Errorf("progress output = %q", out)
	}

	out, err = run(t, "goals", "list", "--json")
	if err != nil {
		t.Fatalf("goals list: %v", err)
	}

	var overviews []service.GoalOverview
	err = json.Unmarshal([]byte(out), &overviews)
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(overviews) != 1 || overviews[0].Stats.Current != 5 || overviews[0].Stats.Percentage != 25 {
		t.Errorf("unexpected overviews: %+v", overviews)
	}

	out, err = run(t, "goals", "show", overviews[0].Goal.ID)
	if err != nil {
		t.Fatalf("goals show: %v", err)
	}
	if !strings.Contains(out, "progress 5/20 (25%)") {
		t.Errorf("show output = %q", out)
	}
}

func TestGoalsCreateRejectsUnknownType(t *testing.T) {
	setupApp(t)

	_, err := run(t, "goals", "create", "weekly", "10")
	if err == nil {
		t.Fatal("expected error for weekly goal")
	}
}

func TestMigrateNeedsSQLStore(t *testing.T) {
	setupApp(t)

	_, err := run(t, "migrate", "status")
	if err == nil || !strings.Contains(err.Error(), "has no migrations") {
		t.Errorf("err = %v", err)
	}
}
