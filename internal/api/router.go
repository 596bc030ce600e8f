package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mwhitford/deskchat/internal/api/handlers"
	"github.com/mwhitford/deskchat/internal/api/middleware"
	"github.com/mwhitford/deskchat/internal/config"
	"github.com/mwhitford/deskchat/internal/service"
	"github.com/mwhitford/deskchat/internal/websocket"
)

func NewRouter(services *service.Services, registry *websocket.Registry, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	directoryHandler := handlers.NewDirectoryHandler(services.Directory)
	messageHandler := handlers.NewMessageHandler(services.Chat)
	wsHandler := handlers.NewWebSocketHandler(registry, services.Chat, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/check-email", authHandler.CheckEmail)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Directory routes
			r.Route("/users", func(r chi.Router) {
				r.Get("/", directoryHandler.List)
				r.Get("/search", directoryHandler.Search)
				r.Post("/me/interests", directoryHandler.AddInterest)
			})

			// Conversation history
			r.Get("/messages/{userID}", messageHandler.History)
		})

		// WebSocket endpoint authenticates inside the handler so the
		// token can also arrive as a query parameter.
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
