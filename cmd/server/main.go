// Package main implements the entry point for the taskdeck server,
// a small task tracking API backed by either an in-memory store or
// PostgreSQL.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/platform/logger"

	_ "github.com/taskdeck/taskdeck/docs"
)

//	@title			TaskDeck API
//	@version		1.0
//	@description	A task tracking API with users and tasks, backed by an in-memory store or PostgreSQL.
//	@BasePath		/

// main initializes configuration, logging and storage, then either runs
// a migration command or starts the HTTP server.
func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command instead of the server (up, down, reset, status, version)",
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("storage_driver", cfg.Storage.Driver))

	if *migrateCmd != "" {
		if err := runMigrations(cfg, appLogger, *migrateCmd); err != nil {
			appLogger.Error("migration failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.cleanup()

	if err := app.run(); err != nil {
		appLogger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
