package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
)

// setupRouter mounts the health check and the authenticated /api routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Trace(app.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", app.health)

	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		if app.limiter != nil {
			r.Use(middleware.RateLimit(app.limiter))
		}
		api.RegisterRoutes(r, api.Handlers{
			Lists:      api.NewListHandler(app.lists, app.logger),
			Invites:    api.NewInviteHandler(app.gate, app.logger),
			Tasks:      api.NewTaskHandler(app.tasks, app.logger),
			PushTokens: api.NewPushTokenHandler(app.pushTokens, app.logger),
			Profile:    api.NewProfileHandler(app.profiles, app.logger),
		})
	})

	return r
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}
