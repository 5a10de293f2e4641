// Package pages holds the server-rendered pages. Each page is a Go template
// rendered inside the shared layout and exposed as a templ.Component.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/readmate/readmate/internal/ctxkeys"
	"github.com/readmate/readmate/internal/markdown"
	"github.com/readmate/readmate/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = map[string]*template.Template{}

func init() {
	for _, name := range []string{"books.html", "book_new.html", "book.html", "goals.html", "not_found.html"} {
		pageTemplates[name] = template.Must(
			template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name),
		)
	}
}

// Base carries what the layout needs on every page.
type Base struct {
	AppName   string
	Title     string
	Path      string
	CSRFToken string
	Nonce     string
	// Live pages reload when the server publishes a change.
	Live bool
}

func NewBase(ctx context.Context, title string) Base {
	b := Base{
		AppName:   "Readmate",
		Title:     title,
		Path:      ctxkeys.URLPath(ctx),
		CSRFToken: ctxkeys.CSRFToken(ctx),
		Nonce:     templ.GetNonce(ctx),
	}
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
		b.AppName = cfg.AppName
	}
	return b
}

type BooksData struct {
	Base
	Books []*model.Book
}

// BookForm echoes submitted values back when validation fails.
type BookForm struct {
	Title      string
	Author     string
	TotalPages string
	CoverURL   string
	StartDate  string
}

type BookFormData struct {
	Base
	Form  BookForm
	Error string
}

type NoteView struct {
	model.Note
	Rendered markdown.Rendered
}

type BookData struct {
	Base
	Book  *model.Book
	Notes []NoteView
	Error string
}

type GoalView struct {
	Goal   *model.Goal
	Stats  model.ProgressStats
	Streak int
}

type GoalsData struct {
	Base
	Active *GoalView
	Goals  []GoalView
	Error  string
}

func Books(data BooksData) templ.Component {
	return templ.FromGoHTML(pageTemplates["books.html"], data)
}

func BookNew(data BookFormData) templ.Component {
	return templ.FromGoHTML(pageTemplates["book_new.html"], data)
}

func Book(data BookData) templ.Component {
	return templ.FromGoHTML(pageTemplates["book.html"], data)
}

func Goals(data GoalsData) templ.Component {
	return templ.FromGoHTML(pageTemplates["goals.html"], data)
}

func NotFound(base Base) templ.Component {
	return templ.FromGoHTML(pageTemplates["not_found.html"], base)
}

var titleCase = cases.Title(language.English)

var funcs = template.FuncMap{
	"statusLabel": statusLabel,
	"badgeClass":  badgeClass,
	"barClass":    barClass,
	"percent":     percent,
	"barWidth":    barWidth,
	"date":        formatDate,
	"period":      period,
}

func statusLabel(status string) string {
	if status == model.BookStatusDropped {
		return "Not Interested"
	}
	return titleCase.String(status)
}

const badgeBase = "inline-flex items-center px-3 py-1 rounded-full text-xs font-medium ring-1 ring-inset bg-indigo-100 text-indigo-700 ring-indigo-600/20"

func badgeClass(status string) string {
	switch status {
	case model.BookStatusCompleted:
		return twmerge.Merge(badgeBase, "bg-green-100 text-green-700 ring-green-600/20")
	case model.BookStatusDropped, model.GoalStatusAbandoned:
		return twmerge.Merge(badgeBase, "bg-gray-100 text-gray-700 ring-gray-600/20")
	}
	return badgeBase
}

func barClass(done bool) string {
	if done {
		return twmerge.Merge("h-full bg-indigo-600", "bg-green-600")
	}
	return "h-full bg-indigo-600"
}

func percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

// barWidth keeps negative progress from producing an invalid CSS width.
func barWidth(p float64) int {
	if p < 0 {
		return 0
	}
	return int(p)
}

func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func period(goalType string) string {
	if goalType == model.GoalTypeMonthly {
		return "per month"
	}
	return "per day"
}
