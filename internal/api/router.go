package api

import (
	"net/http"

	"github.com/dom/todo-api/internal/api/handlers"
	"github.com/dom/todo-api/internal/api/middleware"
	"github.com/dom/todo-api/internal/repository"
	"github.com/dom/todo-api/internal/service"
	"github.com/dom/todo-api/internal/token"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, issuer *token.Issuer, revocations repository.RevocationRepository) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	taskHandler := handlers.NewTaskHandler(services.Task)

	// Public auth routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(issuer, revocations))

		r.Delete("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)

		r.Post("/todo", taskHandler.Create)
		r.Get("/todos", taskHandler.List)
		r.Get("/todos/completed", taskHandler.ListCompleted)
		r.Get("/todos/pending", taskHandler.ListPending)
		r.Get("/todo/{id}", taskHandler.Get)
		r.Put("/todo/{id}", taskHandler.Update)
		r.Delete("/todo/{id}", taskHandler.Delete)
	})

	return r
}
