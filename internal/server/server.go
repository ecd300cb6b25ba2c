// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ericxyz86/culturesoup/internal/cache"
	"github.com/ericxyz86/culturesoup/internal/config"
	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	scanner trend.Scanner,
	history handlers.HistoryStore,
	supplement *cache.SupplementCache,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Feeder-Secret"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	scanHandler := handlers.NewScanHandler(scanner, history)
	supplementHandler := handlers.NewSupplementHandler(supplement)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Scan API
			r.Route("/scan", func(r chi.Router) {
				r.Post("/", scanHandler.RunScan)
				r.Get("/latest", scanHandler.GetLatest)
				r.Get("/history", scanHandler.GetHistory)
			})

			// Supplement API
			r.Route("/supplement", func(r chi.Router) {
				r.With(feederAuth(cfg.FeederSecret)).Post("/", supplementHandler.Push)
				r.Get("/status", supplementHandler.Status)
			})
		})
	})

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// feederAuth gates feeder pushes behind a shared secret. An empty
// configured secret disables pushing entirely.
func feederAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" || r.Header.Get("X-Feeder-Secret") != secret {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid feeder secret"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
