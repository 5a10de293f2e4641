package routes

import (
	"net/http"

	"github.com/readmate/readmate/internal/app"
	"github.com/readmate/readmate/internal/handler"
	"github.com/readmate/readmate/internal/metrics"
	"github.com/readmate/readmate/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	health := handler.NewHealthHandler(app.Store)
	book := handler.NewBookHandler(app.BookService, app.Markdown, app.Broker)
	goal := handler.NewGoalHandler(app.GoalService, app.Broker, app.Cfg.EventsKeepAlive)

	mux := http.NewServeMux()

	// Operations
	mux.HandleFunc("GET /healthz", health.Health)
	mux.Handle("GET /metrics", metrics.Handler(app.Registry))

	// Books
	mux.HandleFunc("GET /{$}", book.BooksPage)
	mux.HandleFunc("GET /books/new", book.NewBookPage)
	mux.HandleFunc("POST /books", book.Create)
	mux.HandleFunc("GET /books/{id}", book.BookPage)
	mux.HandleFunc("POST /books/{id}/progress", book.UpdateProgress)
	mux.HandleFunc("POST /books/{id}/status", book.UpdateStatus)

	// Notes (HTML forms only speak GET and POST)
	mux.HandleFunc("POST /books/{id}/notes", book.AddNote)
	mux.HandleFunc("POST /books/{id}/notes/{noteID}", book.EditNote)
	mux.HandleFunc("POST /books/{id}/notes/{noteID}/delete", book.DeleteNote)

	// Goals
	mux.HandleFunc("GET /goals", goal.GoalsPage)
	mux.HandleFunc("GET /goals/export", goal.Export)
	mux.HandleFunc("GET /goals/events", goal.Events)
	mux.HandleFunc("POST /goals", goal.Create)
	mux.HandleFunc("GET /goals/{id}/progress", goal.Progress)
	mux.HandleFunc("POST /goals/{id}/status", goal.UpdateStatus)

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config first, CSRF reads it for the cookie flags
		middleware.NonceMiddleware, // Must run before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.RateLimitWrites(app.Cfg.WriteRateLimit, app.Cfg.WriteRateWindow),
		middleware.CSRFProtection,
		middleware.WithURLPath,
	)

	return handler
}
