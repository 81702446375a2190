// Package main runs the tasks API server: the HTTP API for shared task
// lists, the push notification pipeline and the periodic sweeps.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a goose migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"push_backend", cfg.Push.Backend,
		"classifier_backend", cfg.Classifier.Backend,
		"events_backend", cfg.Events.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	if migrateCmd != "" {
		log.Info("running migrations", "command", migrateCmd)
		return postgres.Migrate(ctx, db, migrateCmd, flag.Args()...)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
