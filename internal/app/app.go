package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/readmate/readmate/internal/config"
	"github.com/readmate/readmate/internal/db"
	"github.com/readmate/readmate/internal/events"
	"github.com/readmate/readmate/internal/markdown"
	"github.com/readmate/readmate/internal/metrics"
	"github.com/readmate/readmate/internal/repository"
	"github.com/readmate/readmate/internal/service"
	"github.com/readmate/readmate/internal/store"
)

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	Store       store.Store
	Registry    *prometheus.Registry
	Broker      *events.Broker
	Markdown    *markdown.Parser
	GoalService *service.GoalService
	BookService *service.BookService
}

func New(cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	var err error
	a.Store, err = a.openStore()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(a.Registry)

	// "Today" is always taken in the configured zone
	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	// Repositories
	goalRepository := repository.NewGoalRepository(a.Store)
	goalProgressRepository := repository.NewGoalProgressRepository(a.Store)
	bookRepository := repository.NewBookRepository(a.Store)

	// Services
	a.GoalService = service.NewGoalService(goalRepository, goalProgressRepository, recorder, now)
	a.BookService = service.NewBookService(bookRepository, a.GoalService, recorder, now)

	a.Broker = events.NewBroker(cfg.EventBuffer)
	a.Markdown = markdown.NewParser()

	return a, nil
}

// openStore builds the configured record store. The SQL backend runs the
// embedded migrations before use.
func (a *App) openStore() (store.Store, error) {
	cfg := a.Cfg

	switch cfg.StoreBackend {
	case config.StoreMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), nil

	case config.StoreS3:
		s, err := store.NewS3Store(store.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 store: %w", err)
		}
		return s, nil

	case config.StoreSQL, "":
		database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = database

		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store.NewSQLStore(database), nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
