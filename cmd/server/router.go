package main

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// routerDeps carries everything the router needs, keeping newRouter a
// pure function of its dependencies so tests can assemble their own.
type routerDeps struct {
	authHandler    *api.AuthHandler
	taskHandler    *api.TaskHandler
	authMiddleware *middleware.AuthMiddleware
	healthHandler  *api.HealthHandler
}

// newRouter builds the full route tree: public auth endpoints, the
// JWT-protected task endpoints, and the health check.
func newRouter(deps routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Get("/health", deps.healthHandler.Check)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", deps.authHandler.Signup)
		r.Post("/login", deps.authHandler.Login)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(deps.authMiddleware.Authenticate)
		r.Get("/", deps.taskHandler.ListTasks)
		r.Post("/", deps.taskHandler.CreateTask)
		r.Put("/{id}", deps.taskHandler.UpdateTask)
		r.Delete("/{id}", deps.taskHandler.DeleteTask)
	})

	return r
}
