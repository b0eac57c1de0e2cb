package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"autoclerk-backend/internal/handlers"
	"autoclerk-backend/internal/middleware"
)

func New(chatHandler *handlers.ChatHandler) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS())

	// Health check
	r.Get("/health", handlers.Health)

	r.Post("/chat", chatHandler.Chat)

	return r
}
