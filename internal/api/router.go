package api

import (
	"net/http"
	"strings"

	"github.com/alex/deckshare/internal/api/handlers"
	"github.com/alex/deckshare/internal/api/middleware"
	"github.com/alex/deckshare/internal/config"
	"github.com/alex/deckshare/internal/service"
	"github.com/alex/deckshare/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	deckHandler := handlers.NewDeckHandler(services.Deck, services.Access)
	presentHandler := handlers.NewPresentHandler(hub, services.Access)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/decks", func(r chi.Router) {
			// Owner-only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))

				r.Get("/", deckHandler.List)
				r.Post("/", deckHandler.Create)
				r.Patch("/{deckID}", deckHandler.Update)

				r.Post("/{deckID}/slides", deckHandler.CreateSlide)
				r.Put("/{deckID}/slides/{slideID}", deckHandler.UpdateSlide)
				r.Delete("/{deckID}/slides/{slideID}", deckHandler.DeleteSlide)

				r.Get("/{deckID}/viewers", deckHandler.ListViewers)
				r.Post("/{deckID}/viewers", deckHandler.GrantViewer)
				r.Delete("/{deckID}/viewers/{userID}", deckHandler.RevokeViewer)
			})

			// View routes: sometimes public, so auth is optional and the
			// policy evaluator decides per request.
			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalAuth(services.Auth))

				r.Get("/{deckID}", deckHandler.Get)
				r.Get("/{deckID}/slides", deckHandler.ListSlides)
				r.Get("/{deckID}/present", presentHandler.Handle)
			})
		})
	})

	return r
}
