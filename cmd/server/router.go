package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"

	"github.com/taskdeck/taskdeck/internal/api"
	apiMiddleware "github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if app.config.Server.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(app.config.Server.RateLimitPerMinute, time.Minute))
	}

	// Structured 404/405 responses instead of chi's plain-text defaults.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	healthHandler := api.NewHealthHandler(app.pinger(), app.logger)
	userHandler := api.NewUserHandler(app.userStore, app.taskStore, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)

	r.Get("/health", healthHandler.Check)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Replace)
		r.Patch("/{id}", userHandler.Patch)
		r.Delete("/{id}", userHandler.Delete)
		r.Get("/{id}/tasks", userHandler.ListTasks)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Replace)
		r.Patch("/{id}", taskHandler.Patch)
		r.Delete("/{id}", taskHandler.Delete)
	})

	// Interactive API documentation generated from handler annotations.
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs.json"),
	))
	r.Get("/docs.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Documentation unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(doc)); err != nil {
			app.logger.Error("failed to write documentation response", "error", err)
		}
	})

	return r
}

// pinger exposes the database handle for health checks. It returns a nil
// interface for the in-memory backend so the health handler skips the ping.
func (app *application) pinger() api.Pinger {
	if app.db == nil {
		return nil
	}
	return app.db
}
