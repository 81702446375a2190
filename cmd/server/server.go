package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run starts the background workers and the HTTP server and blocks until ctx
// is cancelled or one of them fails. Everything is shut down before it returns.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	app.runner.Start()
	app.scheduler.Start(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if app.consumer != nil {
		g.Go(func() error {
			return app.consumer.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
