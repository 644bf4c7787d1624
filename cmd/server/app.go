package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/platform/postgres"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/memory"
)

// application holds the assembled dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the in-memory backend is active.
	db *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore
}

// newApplication wires the storage backend selected by the configuration
// and returns the ready-to-run application.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		users := memory.NewUserStore(cfg.Storage.BcryptCost)
		app.userStore = users
		app.taskStore = memory.NewTaskStore(users)
		logger.Info("using in-memory storage backend")

	case config.DriverPostgres:
		db, err := setupDatabase(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to set up database: %w", err)
		}
		app.db = db
		app.userStore = postgres.NewUserStore(db, cfg.Storage.BcryptCost, logger)
		app.taskStore = postgres.NewTaskStore(db, logger)
		logger.Info("using postgres storage backend")

	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
